package actions

import (
	"synapse-server/internal/engine/handlers"
	"synapse-server/pkg/api"
)

func HandleCastSlot(ctx handlers.Context, p api.CastSlotPayload) (handlers.Result, error) {
	if err := ctx.Game.PlayerCastSlot(p.Slot); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}
