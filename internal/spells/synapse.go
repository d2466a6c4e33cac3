package spells

import (
	"synapse-server/internal/domain"
)

// SynapseData - кадр исполнения одного каста. Владеет списком целей,
// СВОЕЙ копией программы (LoopBack удаляет инструкции из нее, не из
// книги заклинаний), счетчиком инструкций и флагами управления.
type SynapseData struct {
	// Куда заклинание будет действовать.
	Targets []domain.Position
	// Как заклинание будет действовать (приватная копия).
	Axioms []domain.Axiom
	// Номер исполняемой инструкции.
	Step int
	// Кто кастует.
	Caster domain.EntityID

	// Terminate: кадр завершается после текущей инструкции.
	Terminate bool
	// SkipAdvance: хендлер сам выставил счетчик, обычный инкремент
	// после инструкции пропускается.
	SkipAdvance bool
}

func newSynapse(caster domain.EntityID, axioms []domain.Axiom) *SynapseData {
	return &SynapseData{
		Caster: caster,
		Axioms: axioms,
	}
}

// appendTargets добавляет позиции в список целей. Формы только
// дописывают, никогда не заменяют: несколько форм копят цели.
func (s *SynapseData) appendTargets(positions []domain.Position) {
	s.Targets = append(s.Targets, positions...)
}

// remainder возвращает копию программы после текущей инструкции.
func (s *SynapseData) remainder() []domain.Axiom {
	if s.Step+1 >= len(s.Axioms) {
		return nil
	}
	return domain.CloneAxioms(s.Axioms[s.Step+1:])
}

// exhausted - счетчик вышел за конец (возможно, укороченной) программы.
func (s *SynapseData) exhausted() bool {
	return s.Step >= len(s.Axioms)
}

// FrameView - снимок кадра для отладочной выдачи.
type FrameView struct {
	Caster  string            `json:"caster"`
	Step    int               `json:"step"`
	Axioms  []string          `json:"axioms"`
	Targets []domain.Position `json:"targets"`
}

func (s *SynapseData) view() FrameView {
	axioms := make([]string, len(s.Axioms))
	for i, a := range s.Axioms {
		axioms[i] = a.String()
	}
	return FrameView{
		Caster:  s.Caster.String(),
		Step:    s.Step,
		Axioms:  axioms,
		Targets: s.Targets,
	}
}
