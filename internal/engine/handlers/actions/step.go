package actions

import (
	"fmt"

	"synapse-server/internal/domain"
	"synapse-server/internal/engine/handlers"
	"synapse-server/pkg/api"
)

func HandleStep(ctx handlers.Context, p api.StepPayload) (handlers.Result, error) {
	dir, ok := domain.ParseDir(p.Direction)
	if !ok {
		return handlers.Result{}, fmt.Errorf("unknown direction %q", p.Direction)
	}
	if err := ctx.Game.PlayerStep(dir); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}
