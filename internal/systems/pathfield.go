package systems

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"labyrinth-server/internal/domain"
)

var (
	// ErrUnreachable - у клетки нет записи в поле (через проходы до нее не дойти).
	ErrUnreachable = errors.New("pathfield: unreachable")
	// ErrInconsistent - нарушен инвариант поля.
	ErrInconsistent = errors.New("pathfield: inconsistent")
)

// PathEntry - запись поля для одной клетки.
// Dir - шаг, уменьшающий Dist на единицу (куда идти, чтобы приблизиться к игроку).
type PathEntry struct {
	Dir  domain.Direction `json:"dir"`
	Dist int              `json:"dist"`
}

// PathField - поле расстояний и направлений с корнем в клетке игрока.
type PathField struct {
	terrain Terrain
	root    domain.Coordinate
	entries map[domain.Coordinate]*PathEntry
}

// NewPathField создает пустое поле над заданной проходимостью.
func NewPathField(t Terrain) *PathField {
	return &PathField{
		terrain: t,
		entries: make(map[domain.Coordinate]*PathEntry),
	}
}

// Reset меняет проходимость (новый уровень) и очищает поле.
func (f *PathField) Reset(t Terrain) {
	f.terrain = t
	f.Clear()
}

// Clear удаляет все записи.
func (f *PathField) Clear() {
	f.entries = make(map[domain.Coordinate]*PathEntry)
}

func (f *PathField) Len() int { return len(f.entries) }
func (f *PathField) Empty() bool { return len(f.entries) == 0 }
func (f *PathField) Root() domain.Coordinate { return f.root }

// Lookup возвращает запись клетки. ok == false - клетка недостижима.
func (f *PathField) Lookup(c domain.Coordinate) (PathEntry, bool) {
	e, ok := f.entries[c]
	if !ok {
		return PathEntry{}, false
	}
	return *e, true
}

// Each обходит записи в произвольном порядке.
func (f *PathField) Each(fn func(c domain.Coordinate, e PathEntry)) {
	for c, e := range f.entries {
		fn(c, *e)
	}
}

// Entries возвращает копию всех записей. Поле после этого можно менять.
func (f *PathField) Entries() map[domain.Coordinate]PathEntry {
	out := make(map[domain.Coordinate]PathEntry, len(f.entries))
	for c, e := range f.entries {
		out[c] = *e
	}
	return out
}

// Initiate полностью перестраивает поле BFS из root.
func (f *PathField) Initiate(root domain.Coordinate) {
	f.Clear()
	f.root = root
	f.entries[root] = &PathEntry{Dir: domain.DirNone, Dist: 0}

	queue := []domain.Coordinate{root}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		dist := f.entries[c].Dist + 1

		for _, d := range domain.Cardinals {
			n := c.Step(d)
			if !f.terrain.Passable(n) {
				continue
			}

			e, seen := f.entries[n]
			switch {
			case !seen:
				f.entries[n] = &PathEntry{Dir: d.Opposite(), Dist: dist}
				queue = append(queue, n)
			case e.Dist > dist:
				e.Dir = d.Opposite()
				e.Dist = dist
				queue = append(queue, n)
			}
		}
	}
}

// Recalculate обновляет поле после шага игрока на соседнюю клетку.
// Обходит только уже известные клетки, новых записей не создает.
// Если корня нет в поле, выполняется полная перестройка.
func (f *PathField) Recalculate(root domain.Coordinate) {
	rootEntry, ok := f.entries[root]
	if !ok {
		f.Initiate(root)
		return
	}

	f.root = root
	rootEntry.Dir = domain.DirNone
	rootEntry.Dist = 0

	visited := mapset.New[domain.Coordinate]()
	visited.Put(root)

	queue := []domain.Coordinate{root}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		dist := f.entries[c].Dist + 1

		for _, d := range domain.Cardinals {
			n := c.Step(d)
			e, known := f.entries[n]
			if !known || visited.Has(n) {
				continue
			}
			visited.Put(n)
			e.Dir = d.Opposite()
			e.Dist = dist
			queue = append(queue, n)
		}
	}

	// Записи, до которых BFS не дошел, больше не достижимы
	if visited.Size() != len(f.entries) {
		for c := range f.entries {
			if !visited.Has(c) {
				delete(f.entries, c)
			}
		}
	}
}

// PathToEnd восстанавливает маршрут от игрока до выхода.
// Маршрут начинается в клетке игрока и заканчивается соседом выхода,
// его длина равна расстоянию. Если игрок стоит на выходе, маршрут из
// одного шага {игрок, NONE}.
func (f *PathField) PathToEnd(exit domain.Coordinate) (Route, error) {
	e, ok := f.entries[exit]
	if !ok {
		return nil, fmt.Errorf("%w: exit %s", ErrUnreachable, exit)
	}
	if e.Dist == 0 {
		return Route{{At: exit, Dir: domain.DirNone}}, nil
	}

	route := make(Route, e.Dist)
	cur := exit
	for i := e.Dist - 1; i >= 0; i-- {
		entry, ok := f.entries[cur]
		if !ok || entry.Dir == domain.DirNone {
			return nil, fmt.Errorf("%w: broken chain at %s", ErrInconsistent, cur)
		}
		prev := cur.Step(entry.Dir)
		route[i] = RouteStep{At: prev, Dir: entry.Dir.Opposite()}
		cur = prev
	}

	if cur != f.root {
		return nil, fmt.Errorf("%w: route ends at %s, root %s", ErrInconsistent, cur, f.root)
	}
	return route, nil
}

// Validate проверяет инвариант: корень (NONE, 0), у остальных записей
// шаг по Dir ведет в клетку с расстоянием на единицу меньше.
func (f *PathField) Validate() error {
	if f.Empty() {
		return nil
	}

	root, ok := f.entries[f.root]
	if !ok || root.Dist != 0 || root.Dir != domain.DirNone {
		return fmt.Errorf("%w: bad root %s", ErrInconsistent, f.root)
	}

	for c, e := range f.entries {
		if c == f.root {
			continue
		}
		if e.Dist <= 0 || e.Dir == domain.DirNone {
			return fmt.Errorf("%w: %s has %s/%d", ErrInconsistent, c, e.Dir, e.Dist)
		}
		next, ok := f.entries[c.Step(e.Dir)]
		if !ok || next.Dist != e.Dist-1 {
			return fmt.Errorf("%w: %s -> %s does not descend", ErrInconsistent, c, c.Step(e.Dir))
		}
	}
	return nil
}

// Equal сравнивает два поля запись за записью.
func (f *PathField) Equal(other *PathField) bool {
	if other == nil || f.root != other.root || len(f.entries) != len(other.entries) {
		return false
	}
	for c, e := range f.entries {
		o, ok := other.entries[c]
		if !ok || *o != *e {
			return false
		}
	}
	return true
}

// RouteStep - одна клетка маршрута и шаг из нее дальше к выходу.
type RouteStep struct {
	At  domain.Coordinate `json:"at"`
	Dir domain.Direction  `json:"dir"`
}

// Route - упорядоченный маршрут от игрока к выходу.
type Route []RouteStep

// Index - маршрут в виде карты клетка -> направление (для оверлея).
func (r Route) Index() map[domain.Coordinate]domain.Direction {
	out := make(map[domain.Coordinate]domain.Direction, len(r))
	for _, s := range r {
		out[s.At] = s.Dir
	}
	return out
}

// Coordinates - клетки маршрута по порядку.
func (r Route) Coordinates() []domain.Coordinate {
	out := make([]domain.Coordinate, len(r))
	for i, s := range r {
		out[i] = s.At
	}
	return out
}
