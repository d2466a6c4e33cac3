package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var validDirections = map[string]bool{
	"UP": true, "DOWN": true, "RIGHT": true, "LEFT": true,
}

func (p StepPayload) Validate() error {
	if !validDirections[p.Direction] {
		return fmt.Errorf("unknown direction %q", p.Direction)
	}
	return nil
}

func (p CastSlotPayload) Validate() error {
	if p.Slot < 0 || p.Slot > 7 {
		return fmt.Errorf("slot %d out of range [0..7]", p.Slot)
	}
	return nil
}

func (p CraftPayload) Validate() error {
	if len(p.Placements) == 0 {
		return errors.New("craft requires at least one soul")
	}
	seen := make(map[[2]int]bool, len(p.Placements))
	for _, pl := range p.Placements {
		key := [2]int{pl.X, pl.Y}
		if seen[key] {
			return fmt.Errorf("two souls on cell (%d,%d)", pl.X, pl.Y)
		}
		seen[key] = true
		if pl.Soul == "" {
			return errors.New("placement without a soul")
		}
	}
	return nil
}

func (p EquipPayload) Validate() error {
	if p.SpellID == "" {
		return errors.New("spellId is required")
	}
	return nil
}

func (p CheatPayload) Validate() error {
	if p.Command == "" {
		return errors.New("cheat command is required")
	}
	return nil
}
