package content

import (
	"fmt"

	"synapse-server/internal/crafting"
	"synapse-server/internal/domain"

	lua "github.com/yuin/gopher-lua"
)

// registerAPI публикует конструкторы контента в Lua-окружении:
//
//	axiom(name, opts)  - инструкция заклинания
//	species{...}       - вид существа
//	recipe{...}        - рецепт крафта
//	soul_pile{...}     - стартовая стопка душ игрока
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("axiom", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		opts := L.OptTable(2, L.NewTable())

		ax, err := buildAxiom(name, opts)
		if err != nil {
			L.RaiseError("axiom: %v", err)
			return 0
		}
		ud := L.NewUserData()
		ud.Value = ax
		L.Push(ud)
		return 1
	}))

	L.SetGlobal("species", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		def, err := buildSpecies(tbl)
		if err != nil {
			L.RaiseError("species: %v", err)
			return 0
		}
		coll.species = append(coll.species, def)
		return 0
	}))

	L.SetGlobal("recipe", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		pattern := stringField(tbl, "pattern")
		if pattern == "" {
			L.RaiseError("recipe: missing pattern")
			return 0
		}
		rec, err := crafting.ParseRecipe(pattern)
		if err != nil {
			L.RaiseError("recipe: %v", err)
			return 0
		}
		ax, err := axiomValue(tbl.RawGetString("axiom"))
		if err != nil {
			L.RaiseError("recipe %q: %v", pattern, err)
			return 0
		}
		coll.recipes = append(coll.recipes, crafting.Entry{Recipe: rec, Axiom: ax})
		return 0
	}))

	L.SetGlobal("soul_pile", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		var pile []domain.Soul
		var fail error
		tbl.ForEach(func(_, v lua.LValue) {
			soul, ok := domain.ParseSoul(lua.LVAsString(v))
			if !ok && fail == nil {
				fail = fmt.Errorf("unknown soul %q", lua.LVAsString(v))
			}
			pile = append(pile, soul)
		})
		if fail != nil {
			L.RaiseError("soul_pile: %v", fail)
			return 0
		}
		coll.pile = pile
		return 0
	}))
}

// buildSpecies разбирает таблицу вида.
func buildSpecies(tbl *lua.LTable) (*domain.SpeciesDef, error) {
	name := stringField(tbl, "name")
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}

	def := &domain.SpeciesDef{
		Name:           name,
		Glyph:          glyphField(tbl),
		MaxHP:          intField(tbl, "max_hp", 1),
		Behavior:       stringFieldDefault(tbl, "behavior", domain.BehaviorNone),
		ActionsPerTurn: intField(tbl, "actions_per_turn", 1),
		WaitTurns:      intField(tbl, "wait_turns", 0),
	}

	if soulName := stringField(tbl, "soul"); soulName != "" {
		soul, ok := domain.ParseSoul(soulName)
		if !ok {
			return nil, fmt.Errorf("%s: unknown soul %q", name, soulName)
		}
		def.Soul = soul
	}

	if flags, ok := tbl.RawGetString("flags").(*lua.LTable); ok {
		def.Flags = domain.SpeciesFlags{
			Intangible: boolField(flags, "intangible"),
			MeleeProof: boolField(flags, "melee_proof"),
			SpellProof: boolField(flags, "spell_proof"),
			Pushable:   boolField(flags, "pushable"),
			Door:       boolField(flags, "door"),
			Immobile:   boolField(flags, "immobile"),
		}
	}

	if spells, ok := tbl.RawGetString("spells").(*lua.LTable); ok {
		var fail error
		spells.ForEach(func(k, v lua.LValue) {
			caste, ok := domain.ParseSoul(lua.LVAsString(k))
			if !ok {
				if fail == nil {
					fail = fmt.Errorf("%s: unknown spell caste %q", name, lua.LVAsString(k))
				}
				return
			}
			axioms, err := axiomList(v)
			if err != nil {
				if fail == nil {
					fail = fmt.Errorf("%s: %w", name, err)
				}
				return
			}
			def.Spellbook = append(def.Spellbook, domain.NewSpell(caste, 0, axioms))
		})
		if fail != nil {
			return nil, fail
		}
	}

	if conts, ok := tbl.RawGetString("contingencies").(*lua.LTable); ok {
		def.Contingencies = make(map[domain.TriggerKind][]domain.Axiom)
		var fail error
		conts.ForEach(func(k, v lua.LValue) {
			trigger, ok := domain.ParseTrigger(lua.LVAsString(k))
			if !ok {
				if fail == nil {
					fail = fmt.Errorf("%s: unknown trigger %q", name, lua.LVAsString(k))
				}
				return
			}
			axioms, err := axiomList(v)
			if err != nil {
				if fail == nil {
					fail = fmt.Errorf("%s: %w", name, err)
				}
				return
			}
			def.Contingencies[trigger] = axioms
		})
		if fail != nil {
			return nil, fail
		}
	}

	return def, nil
}

// buildAxiom создает аксиому по имени и опциям.
func buildAxiom(name string, opts *lua.LTable) (domain.Axiom, error) {
	switch name {
	case "ego":
		return domain.Ego{}, nil
	case "plus":
		return domain.Plus{}, nil
	case "touch":
		return domain.Touch{}, nil
	case "momentum_beam":
		return domain.MomentumBeam{}, nil
	case "plus_beam":
		return domain.PlusBeam{}, nil
	case "x_beam":
		return domain.XBeam{}, nil
	case "halo":
		return domain.Halo{Radius: intField(opts, "radius", 1)}, nil
	case "spread":
		return domain.Spread{}, nil
	case "dash":
		return domain.Dash{MaxDistance: intField(opts, "max_distance", 1)}, nil
	case "summon":
		species := stringField(opts, "species")
		if species == "" {
			return nil, fmt.Errorf("summon: missing species")
		}
		return domain.SummonCreature{Species: species}, nil
	case "repression_damage":
		return domain.RepressionDamage{Damage: intField(opts, "damage", 1)}, nil
	case "heal_or_harm":
		return domain.HealOrHarm{Amount: intField(opts, "amount", 1)}, nil
	case "random_caster_teleport":
		return domain.RandomCasterTeleport{}, nil
	case "status":
		effectName := stringField(opts, "effect")
		effect, ok := domain.ParseStatus(effectName)
		if !ok {
			return nil, fmt.Errorf("status: unknown effect %q", effectName)
		}
		duration := domain.Infinite()
		if stacks := intField(opts, "stacks", 0); stacks > 0 {
			duration = domain.Finite(stacks)
		}
		return domain.ApplyStatus{
			Effect:   effect,
			Potency:  intField(opts, "potency", 1),
			Duration: duration,
		}, nil
	case "transform":
		species := stringField(opts, "species")
		if species == "" {
			return nil, fmt.Errorf("transform: missing species")
		}
		return domain.Transform{Species: species}, nil
	case "place_step_trap":
		return domain.PlaceStepTrap{}, nil
	case "purge_targets":
		return domain.PurgeTargets{}, nil
	case "keep_one_random":
		return domain.KeepOneRandom{}, nil
	case "loop_back":
		return domain.LoopBack{Steps: intField(opts, "steps", 1)}, nil
	case "force_cast":
		return domain.ForceCast{}, nil
	case "when_dealing_damage":
		return domain.WhenDealingDamage{}, nil
	case "when_taking_damage":
		return domain.WhenTakingDamage{}, nil
	case "when_moved":
		return domain.WhenMoved{}, nil
	}
	return nil, fmt.Errorf("unknown axiom %q", name)
}

// axiomValue достает аксиому из userdata.
func axiomValue(v lua.LValue) (domain.Axiom, error) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, fmt.Errorf("expected axiom value, got %s", v.Type())
	}
	ax, ok := ud.Value.(domain.Axiom)
	if !ok {
		return nil, fmt.Errorf("userdata is not an axiom")
	}
	return ax, nil
}

// axiomList достает список аксиом из Lua-таблицы.
func axiomList(v lua.LValue) ([]domain.Axiom, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("expected axiom list, got %s", v.Type())
	}
	var out []domain.Axiom
	var fail error
	tbl.ForEach(func(_, item lua.LValue) {
		ax, err := axiomValue(item)
		if err != nil {
			if fail == nil {
				fail = err
			}
			return
		}
		out = append(out, ax)
	})
	if fail != nil {
		return nil, fail
	}
	return out, nil
}

func stringField(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func stringFieldDefault(tbl *lua.LTable, key, fallback string) string {
	if s := stringField(tbl, key); s != "" {
		return s
	}
	return fallback
}

func intField(tbl *lua.LTable, key string, fallback int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return fallback
}

func boolField(tbl *lua.LTable, key string) bool {
	return lua.LVAsBool(tbl.RawGetString(key))
}

func glyphField(tbl *lua.LTable) rune {
	s := stringField(tbl, "glyph")
	for _, r := range s {
		return r
	}
	return '?'
}
