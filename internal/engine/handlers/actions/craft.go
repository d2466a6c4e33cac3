package actions

import (
	"fmt"

	"synapse-server/internal/domain"
	"synapse-server/internal/engine/handlers"
	"synapse-server/pkg/api"

	"github.com/google/uuid"
)

func HandleCraft(ctx handlers.Context, p api.CraftPayload) (handlers.Result, error) {
	placements := make(map[domain.Position]domain.Soul, len(p.Placements))
	for _, pl := range p.Placements {
		soul, ok := domain.ParseSoul(pl.Soul)
		if !ok || soul == domain.SoulEmpty {
			return handlers.Result{}, fmt.Errorf("unknown soul %q", pl.Soul)
		}
		placements[domain.NewPosition(pl.X, pl.Y)] = soul
	}

	if err := ctx.Game.Craft(placements); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}

func HandleEquip(ctx handlers.Context, p api.EquipPayload) (handlers.Result, error) {
	id, err := uuid.Parse(p.SpellID)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("bad spell id: %w", err)
	}
	if err := ctx.Game.Equip(id); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.EmptyResult(), nil
}
