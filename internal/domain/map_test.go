package domain

import (
	"math"
	"testing"
)

func TestTraceBeamEmptyMap(t *testing.T) {
	m := NewMap()

	beam := m.TraceBeam(NewPosition(0, 0), 1, 0, 10)
	if len(beam) != 10 {
		t.Fatalf("expected 10 positions on empty map, got %d", len(beam))
	}
	if beam[0] != NewPosition(1, 0) {
		t.Errorf("beam must start one tile away from origin, got %v", beam[0])
	}
	if beam[9] != NewPosition(10, 0) {
		t.Errorf("beam end = %v, want (10,0)", beam[9])
	}
}

func TestTraceBeamStopsAtWall(t *testing.T) {
	m := NewMap()
	wall := NewPosition(3, 0)
	m.Insert(wall, PackEntityID(1, 1))

	beam := m.TraceBeam(NewPosition(0, 0), 1, 0, 10)
	if len(beam) != 3 {
		t.Fatalf("expected 3 positions, got %d: %v", len(beam), beam)
	}
	// Останавливающая клетка всегда включается.
	if beam[len(beam)-1] != wall {
		t.Errorf("last beam tile = %v, want wall tile %v", beam[len(beam)-1], wall)
	}
}

func TestRingGeometry(t *testing.T) {
	m := NewMap()
	center := NewPosition(0, 0)

	ring := m.Ring(center, 4)

	seen := make(map[Position]bool)
	for _, p := range ring {
		if seen[p] {
			t.Fatalf("duplicate coordinate %v in ring", p)
		}
		seen[p] = true
	}

	// 8-симметричная генерация для радиуса 4: ряды r=0 (d=4),
	// r=1 (d=3), r=2 (d=3), всего 20 уникальных клеток.
	want := []Position{
		{X: 4, Y: 0}, {X: -4, Y: 0}, {X: 0, Y: 4}, {X: 0, Y: -4},
		{X: 3, Y: 1}, {X: 3, Y: -1}, {X: -3, Y: 1}, {X: -3, Y: -1},
		{X: 1, Y: 3}, {X: 1, Y: -3}, {X: -1, Y: 3}, {X: -1, Y: -3},
		{X: 3, Y: 2}, {X: 3, Y: -2}, {X: -3, Y: 2}, {X: -3, Y: -2},
		{X: 2, Y: 3}, {X: 2, Y: -3}, {X: -2, Y: 3}, {X: -2, Y: -3},
	}
	if len(ring) != len(want) {
		t.Fatalf("ring size = %d, want %d", len(ring), len(want))
	}
	for _, p := range want {
		if !seen[p] {
			t.Errorf("ring is missing tile %v", p)
		}
	}

	// Обход начинается от угла 0 и идет по возрастанию угла.
	if ring[0] != (Position{X: 4, Y: 0}) {
		t.Errorf("ring starts at %v, want (4,0)", ring[0])
	}
	prev := -1.0
	for _, p := range ring {
		angle := math.Atan2(float64(p.Y), float64(p.X))
		if angle < 0 {
			angle += 2 * math.Pi
		}
		if angle < prev {
			t.Fatalf("ring not sorted by angle at %v", p)
		}
		prev = angle
	}
}

func TestRingSmallRadius(t *testing.T) {
	m := NewMap()
	ring := m.Ring(NewPosition(2, 3), 1)
	if len(ring) != 4 {
		t.Fatalf("radius-1 ring size = %d, want 4", len(ring))
	}
}

func TestClosestStepToward(t *testing.T) {
	m := NewMap()

	dir, ok := m.ClosestStepToward(NewPosition(0, 0), NewPosition(3, 0))
	if !ok || dir != DirRight {
		t.Errorf("open path: got %v/%v, want RIGHT", dir, ok)
	}

	// Прямой путь заблокирован - стабильный tie-break отдает UP.
	m.Insert(NewPosition(1, 0), PackEntityID(1, 1))
	dir, ok = m.ClosestStepToward(NewPosition(0, 0), NewPosition(3, 0))
	if !ok || dir != DirUp {
		t.Errorf("blocked path: got %v/%v, want UP", dir, ok)
	}

	// Цель-клетка годится, даже если занята.
	dir, ok = m.ClosestStepToward(NewPosition(0, 0), NewPosition(1, 0))
	if !ok || dir != DirRight {
		t.Errorf("occupied destination: got %v/%v, want RIGHT", dir, ok)
	}
}

func TestClosestStepTowardBoxedIn(t *testing.T) {
	m := NewMap()
	start := NewPosition(0, 0)
	for i, p := range m.Adjacent(start) {
		m.Insert(p, PackEntityID(1, uint64(i+1)))
	}
	if _, ok := m.ClosestStepToward(start, NewPosition(5, 5)); ok {
		t.Error("boxed-in creature must have no move")
	}
}

func TestMapOccupancyIdentity(t *testing.T) {
	m := NewMap()
	a := PackEntityID(1, 1)
	b := PackEntityID(1, 2)
	posA := NewPosition(0, 0)
	posB := NewPosition(1, 0)

	m.Insert(posA, a)
	m.Insert(posB, b)

	// MoveOccupant с пустой старой клетки - тихий no-op.
	m.MoveOccupant(NewPosition(9, 9), NewPosition(8, 8))
	if !m.IsPassable(NewPosition(8, 8)) {
		t.Error("no-op move must not create a record")
	}

	// a ушел с клетки, b занял ее; снятие записи a не должно выселить b.
	m.MoveOccupant(posA, NewPosition(0, 1))
	m.MoveOccupant(posB, posA)
	if m.Remove(posA, a) {
		t.Error("stale remove evicted the new occupant")
	}
	if id, ok := m.OccupantAt(posA); !ok || id != b {
		t.Errorf("occupant at %v = %v, want %v", posA, id, b)
	}
}
