package domain

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// WallSet - множество непроходимых клеток. Has работает за O(1).
// Нулевое значение пригодно только для чтения (пустое множество).
type WallSet struct {
	set mapset.Set[Coordinate]
}

// NewWallSet создает множество стен из списка координат.
func NewWallSet(walls ...Coordinate) WallSet {
	s := mapset.New[Coordinate]()
	for _, w := range walls {
		s.Put(w)
	}
	return WallSet{set: s}
}

// Add помечает клетку стеной. Используется только при построении уровня.
func (w WallSet) Add(c Coordinate) {
	w.set.Put(c)
}

// Has сообщает, является ли клетка стеной.
func (w WallSet) Has(c Coordinate) bool {
	return w.set.Has(c)
}

// Len возвращает количество стен.
func (w WallSet) Len() int {
	return w.set.Size()
}

// Each обходит стены в произвольном порядке.
func (w WallSet) Each(fn func(c Coordinate)) {
	w.set.Each(fn)
}

// Slice возвращает стены в построчном порядке (для DTO и отладки).
func (w WallSet) Slice() []Coordinate {
	out := make([]Coordinate, 0, w.Len())
	w.set.Each(func(c Coordinate) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
