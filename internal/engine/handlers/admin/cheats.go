package admin

import (
	"fmt"
	"strings"

	"synapse-server/internal/domain"
	"synapse-server/internal/engine/handlers"
	"synapse-server/pkg/api"
)

// HandleCheat - отладочные команды. В бою не используются.
func HandleCheat(ctx handlers.Context, p api.CheatPayload) (handlers.Result, error) {
	switch strings.ToUpper(p.Command) {
	case "HEAL":
		if err := ctx.Game.CheatHeal(); err != nil {
			return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
		}
		return handlers.Result{Msg: "Fully healed", MsgType: "INFO"}, nil

	case "SMITE":
		if err := ctx.Game.CheatSmite(); err != nil {
			return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
		}
		return handlers.Result{Msg: "Smited everything", MsgType: "COMBAT"}, nil

	case "SPAWN":
		if p.Species == "" {
			return handlers.Result{}, fmt.Errorf("spawn cheat requires species")
		}
		pos := domain.NewPosition(p.X, p.Y)
		if err := ctx.Game.CheatSpawn(p.Species, pos); err != nil {
			return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
		}
		return handlers.Result{Msg: fmt.Sprintf("Spawned %s", p.Species), MsgType: "INFO"}, nil
	}

	return handlers.Result{}, fmt.Errorf("unknown cheat %q", p.Command)
}
