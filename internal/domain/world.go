package domain

// World - хранилище всех существ сессии плюс индекс занятости.
// Единственный владелец данных существ; порядок обхода стабилен
// (порядок появления) ради детерминизма.
type World struct {
	Map *Map

	creatures map[EntityID]*Creature
	order     []EntityID
	nextIndex uint64

	playerID EntityID
}

func NewWorld() *World {
	return &World{
		Map:       NewMap(),
		creatures: make(map[EntityID]*Creature),
		nextIndex: 1,
	}
}

// Spawn создает существо вида def на позиции pos и регистрирует его
// в мире и (если оно осязаемо) на карте.
func (w *World) Spawn(def *SpeciesDef, kind uint16, pos Position) *Creature {
	id := PackEntityID(kind, w.nextIndex)
	w.nextIndex++

	c := &Creature{
		ID:       id,
		Pos:      pos,
		Momentum: DirUp,
		Statuses: NewStatusSet(),
		Summoner: NilEntity,
		IsPlayer: def.Behavior == BehaviorPlayer,
	}
	c.ApplySpecies(def)
	if c.IsPlayer {
		c.Wheel = &SoulWheel{}
		w.playerID = id
	}

	w.creatures[id] = c
	w.order = append(w.order, id)
	if c.Tangible() {
		w.Map.Insert(pos, id)
	}
	return c
}

// Get возвращает существо по ID.
func (w *World) Get(id EntityID) (*Creature, bool) {
	c, ok := w.creatures[id]
	return c, ok
}

// MustGet - как Get, но паникует на отсутствующем ID. Интенты,
// ссылающиеся на уже удаленное существо, - ошибка логики выше по
// течению, восстанавливаться из нее нельзя.
func (w *World) MustGet(id EntityID) *Creature {
	c, ok := w.creatures[id]
	if !ok {
		panic("world: intent references removed entity " + id.String())
	}
	return c
}

// Player возвращает существо игрока (nil, если его нет).
func (w *World) Player() *Creature {
	if w.playerID == NilEntity {
		return nil
	}
	return w.creatures[w.playerID]
}

// ForEach обходит существ в порядке появления.
func (w *World) ForEach(fn func(*Creature)) {
	for _, id := range w.order {
		if c, ok := w.creatures[id]; ok {
			fn(c)
		}
	}
}

// Creatures возвращает срез существ в порядке появления.
func (w *World) Creatures() []*Creature {
	out := make([]*Creature, 0, len(w.order))
	for _, id := range w.order {
		if c, ok := w.creatures[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len - число живых существ.
func (w *World) Len() int {
	return len(w.creatures)
}

// Remove выписывает существо из реестра. Запись на карте снимает
// вызывающий (с проверкой принадлежности клетки).
func (w *World) Remove(id EntityID) {
	delete(w.creatures, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if w.playerID == id {
		w.playerID = NilEntity
	}
}
