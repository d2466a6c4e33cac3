package engine

import (
	"sort"

	"synapse-server/internal/domain"
	"synapse-server/pkg/api"
)

// BuildState создает снимок сессии для рассылки клиентам.
// Вызывается под мьютексом сервиса.
func (s *GameService) BuildState() *api.ServerResponse {
	session := s.session
	world := session.World()

	resp := &api.ServerResponse{
		Type:   "UPDATE",
		Turn:   session.Turn(),
		Events: session.TakeEvents(),
		Logs:   session.TakeLogs(),
	}

	for _, c := range world.Creatures() {
		resp.Entities = append(resp.Entities, s.toEntityView(c))
	}

	if player := world.Player(); player != nil {
		resp.MyEntityID = player.ID.String()
		resp.Wheel = wheelView(player.Wheel)
		resp.Spellbook = spellbookView(player.Spellbook)
		for _, spell := range player.Library {
			resp.Library = append(resp.Library, spellView(spell))
		}
	}

	return resp
}

// toEntityView конвертирует существо в DTO.
func (s *GameService) toEntityView(c *domain.Creature) api.EntityView {
	view := api.EntityView{
		ID:       c.ID.String(),
		Species:  c.Species,
		Pos:      api.PositionView{X: c.Pos.X, Y: c.Pos.Y},
		Momentum: c.Momentum.String(),
		HP:       c.HP,
		MaxHP:    c.MaxHP,
		Soul:     c.Soul.String(),
		IsPlayer: c.IsPlayer,
	}

	if def, ok := s.session.defs.Species[c.Species]; ok {
		view.Glyph = string(def.Glyph)
	}

	// Статусы сортируются по виду: порядок обхода мапы нестабилен.
	kinds := make([]domain.StatusKind, 0, len(c.Statuses))
	for kind := range c.Statuses {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		inst := c.Statuses[kind]
		sv := api.StatusView{Kind: kind.String(), Potency: inst.Potency}
		if !inst.Duration.Infinite {
			sv.Stacks = inst.Duration.Stacks
		}
		view.Statuses = append(view.Statuses, sv)
	}

	return view
}

func wheelView(wheel *domain.SoulWheel) *api.WheelView {
	view := &api.WheelView{
		Slots:     make([]string, domain.SoulWheelSlots),
		PileCount: len(wheel.Pile),
	}
	for i, soul := range wheel.Slots {
		view.Slots[i] = soul.String()
	}
	return view
}

func spellbookView(book *domain.Spellbook) []api.SpellView {
	castes := make([]domain.Soul, 0, len(book.Spells))
	for caste := range book.Spells {
		castes = append(castes, caste)
	}
	sort.Slice(castes, func(i, j int) bool { return castes[i] < castes[j] })

	out := make([]api.SpellView, 0, len(castes))
	for _, caste := range castes {
		out = append(out, spellView(book.Spells[caste]))
	}
	return out
}

func spellView(spell domain.Spell) api.SpellView {
	axioms := make([]string, len(spell.Axioms))
	for i, a := range spell.Axioms {
		axioms[i] = a.String()
	}
	return api.SpellView{
		ID:          spell.ID.String(),
		Caste:       spell.Caste.String(),
		Icon:        spell.Icon,
		Description: spell.Description,
		Axioms:      axioms,
	}
}
