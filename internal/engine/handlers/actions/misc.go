package actions

import (
	"synapse-server/internal/engine/handlers"
)

// HandleInit не меняет мир: снимок уходит клиенту после любой команды.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Game.PlayerWait(); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}

func HandleDraw(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Game.PlayerDraw(); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}

func HandleRespawn(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Game.Respawn(); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}
