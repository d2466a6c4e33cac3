package content

import (
	"embed"
	"fmt"
	"sort"

	"synapse-server/internal/crafting"
	"synapse-server/internal/domain"

	lua "github.com/yuin/gopher-lua"
)

//go:embed content/*.lua
var embedded embed.FS

// collector копит сырые определения во время исполнения Lua-файлов.
type collector struct {
	species []*domain.SpeciesDef
	recipes []crafting.Entry
	pile    []domain.Soul
}

// Load загружает встроенный контент по умолчанию.
func Load() (*Defs, error) {
	entries, err := embedded.ReadDir("content")
	if err != nil {
		return nil, fmt.Errorf("reading embedded content: %w", err)
	}

	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	sort.Strings(files)

	// Песочница: только безопасные библиотеки, никаких io/os.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, name := range files {
		src, err := embedded.ReadFile("content/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := L.DoString(string(src)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", name, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs открывает только безопасное подмножество стандартных
// библиотек Lua.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox убирает опасные глобалы.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// math.randomseed убирается ради детерминизма контента.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// compile собирает Defs из сырых определений.
func compile(coll *collector) (*Defs, error) {
	defs := &Defs{
		Species:    make(map[string]*domain.SpeciesDef, len(coll.species)),
		Recipes:    coll.recipes,
		PlayerPile: coll.pile,
	}
	for _, def := range coll.species {
		if _, dup := defs.Species[def.Name]; dup {
			return nil, fmt.Errorf("species %q defined twice", def.Name)
		}
		defs.Species[def.Name] = def
	}
	defs.finalize()
	return defs, nil
}

// validate проверяет перекрестные ссылки контента.
func validate(defs *Defs) error {
	playerCount := 0
	for name, def := range defs.Species {
		switch def.Behavior {
		case domain.BehaviorPlayer:
			playerCount++
		case domain.BehaviorHunt, domain.BehaviorWander,
			domain.BehaviorSpawner, domain.BehaviorNone:
		default:
			return fmt.Errorf("species %q: unknown behavior %q", name, def.Behavior)
		}
		if def.MaxHP < 1 {
			return fmt.Errorf("species %q: max_hp must be positive", name)
		}

		for _, spell := range def.Spellbook {
			if err := validateAxioms(defs, spell.Axioms); err != nil {
				return fmt.Errorf("species %q: %w", name, err)
			}
		}
		for _, programs := range def.Contingencies {
			if err := validateAxioms(defs, programs); err != nil {
				return fmt.Errorf("species %q: %w", name, err)
			}
		}
	}
	if playerCount != 1 {
		return fmt.Errorf("content must define exactly one player species, got %d", playerCount)
	}

	// Аксиома ловушек призывает вид "trap": он обязан существовать.
	if _, ok := defs.Species["trap"]; !ok {
		return fmt.Errorf("content must define the %q species", "trap")
	}

	for _, entry := range defs.Recipes {
		if err := validateAxioms(defs, []domain.Axiom{entry.Axiom}); err != nil {
			return fmt.Errorf("recipe: %w", err)
		}
	}
	return nil
}

// validateAxioms проверяет ссылки на виды внутри программ.
func validateAxioms(defs *Defs, axioms []domain.Axiom) error {
	for _, ax := range axioms {
		switch a := ax.(type) {
		case domain.SummonCreature:
			if _, ok := defs.Species[a.Species]; !ok {
				return fmt.Errorf("summon references unknown species %q", a.Species)
			}
		case domain.Transform:
			if _, ok := defs.Species[a.Species]; !ok {
				return fmt.Errorf("transform references unknown species %q", a.Species)
			}
		}
	}
	return nil
}
