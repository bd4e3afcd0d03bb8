package maze

import (
	"github.com/zyedidia/generic/mapset"

	"labyrinth-server/internal/domain"
)

// Reachable возвращает все открытые клетки, достижимые из from
// по 4-связности. blocked (может быть nil) исключает дополнительные клетки.
func Reachable(width, height int, walls domain.WallSet, from domain.Coordinate, blocked func(domain.Coordinate) bool) mapset.Set[domain.Coordinate] {
	seen := mapset.New[domain.Coordinate]()
	if !from.In(width, height) || walls.Has(from) {
		return seen
	}

	seen.Put(from)
	queue := []domain.Coordinate{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		for _, d := range domain.Cardinals {
			n := c.Step(d)
			if !n.In(width, height) || walls.Has(n) || seen.Has(n) {
				continue
			}
			if blocked != nil && blocked(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}

// OpenCells - все клетки поля, не являющиеся стеной, в построчном порядке.
func OpenCells(width, height int, walls domain.WallSet) []domain.Coordinate {
	out := make([]domain.Coordinate, 0, width*height-walls.Len())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if c := domain.Pt(x, y); !walls.Has(c) {
				out = append(out, c)
			}
		}
	}
	return out
}
