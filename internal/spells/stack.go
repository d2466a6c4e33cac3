package spells

import (
	"math/rand"

	"synapse-server/internal/domain"
	"synapse-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Env - доступ интерпретатора к миру. Только чтение позиций и карты;
// все мировые эффекты уходят наружу интентами.
type Env struct {
	World *domain.World
	Rng   *rand.Rand
}

// Stack - стек кадров заклинаний (LIFO). Верхний кадр всегда тот,
// что продвигается сейчас; после каждой инструкции кадр кладется
// обратно, если не исчерпан и не завершен.
//
// Запросы каста, возникшие во время исполнения инструкции, копятся
// в pending и допускаются на стек после зачистки кадра: вложенный
// каст полностью отыгрывает до того, как внешний продолжится.
type Stack struct {
	frames  []*SynapseData
	pending []*SynapseData
}

func NewStack() *Stack {
	return &Stack{}
}

// Cast ставит заклинание в очередь на исполнение от имени caster.
// Кадр получает собственную копию программы.
func (s *Stack) Cast(caster domain.EntityID, spell domain.Spell) {
	s.CastProgram(caster, domain.CloneAxioms(spell.Axioms))
}

// CastProgram ставит в очередь сырую программу (ForceCast, триггеры,
// заряды ловушек). Программа уже должна принадлежать кадру.
func (s *Stack) CastProgram(caster domain.EntityID, axioms []domain.Axiom) {
	if len(axioms) == 0 {
		return
	}
	s.pending = append(s.pending, newSynapse(caster, axioms))
}

// Quiescent - затишье: нет ни кадров, ни непринятых запросов каста.
// Открывает завершение хода и зачистку удаляемых существ.
func (s *Stack) Quiescent() bool {
	return len(s.frames) == 0 && len(s.pending) == 0
}

// Depth возвращает число кадров на стеке.
func (s *Stack) Depth() int {
	return len(s.frames) + len(s.pending)
}

// DropCaster снимает все кадры удаляемого существа.
func (s *Stack) DropCaster(id domain.EntityID) {
	keep := s.frames[:0]
	for _, f := range s.frames {
		if f.Caster != id {
			keep = append(keep, f)
		}
	}
	s.frames = keep

	keepPending := s.pending[:0]
	for _, f := range s.pending {
		if f.Caster != id {
			keepPending = append(keepPending, f)
		}
	}
	s.pending = keepPending
}

// Dump возвращает снимок стека сверху вниз (для отладки).
func (s *Stack) Dump() []FrameView {
	out := make([]FrameView, 0, len(s.frames))
	for i := len(s.frames) - 1; i >= 0; i-- {
		out = append(out, s.frames[i].view())
	}
	return out
}

// admitPending переносит отложенные касты на вершину стека.
func (s *Stack) admitPending() {
	if len(s.pending) == 0 {
		return
	}
	s.frames = append(s.frames, s.pending...)
	s.pending = s.pending[:0]
}

// Advance продвигает верхний кадр на одну инструкцию и возвращает
// излученные интенты. Пустой стек - тихий no-op.
func (s *Stack) Advance(env Env) []domain.Intent {
	s.admitPending()
	if len(s.frames) == 0 {
		return nil
	}

	// Кадр снимается со стека на время исполнения: инструкция не
	// должна наблюдать сама себя на вершине.
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	if frame.Step < 0 || frame.exhausted() {
		// Счетчик разъехался с программой: дефект, не игровая ситуация.
		panic("synapse: program counter desynchronized")
	}

	axiom := frame.Axioms[frame.Step]
	logger.Log.WithFields(logrus.Fields{
		"component": "synapse_stack",
		"caster":    frame.Caster,
		"step":      frame.Step,
		"axiom":     axiom.String(),
		"targets":   len(frame.Targets),
	}).Debug("Advancing synapse")

	intents := s.execute(env, frame, axiom)

	// Зачистка после инструкции.
	if frame.SkipAdvance {
		frame.SkipAdvance = false
	} else {
		frame.Step++
	}
	if !frame.Terminate && !frame.exhausted() {
		s.frames = append(s.frames, frame)
	}

	// Вложенные касты ложатся ПОВЕРХ возвращенного кадра.
	s.admitPending()

	return intents
}
