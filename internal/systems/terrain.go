package systems

import (
	"labyrinth-server/internal/domain"
)

// Terrain - статическая проходимость уровня: границы, стены, объекты.
// Не меняется в пределах уровня, поэтому его можно разделять по ссылке.
type Terrain struct {
	Width, Height int
	Walls         domain.WallSet
	Items         map[domain.Coordinate]domain.Interactable
}

// NewTerrain собирает проходимость из уровня.
func NewTerrain(l *domain.Level) Terrain {
	return Terrain{
		Width:  l.Width(),
		Height: l.Height(),
		Walls:  l.Walls(),
		Items:  l.Interactables(),
	}
}

// Passable: внутри поля, не стена, не объект.
func (t Terrain) Passable(c domain.Coordinate) bool {
	if !c.In(t.Width, t.Height) || t.Walls.Has(c) {
		return false
	}
	_, blocked := t.Items[c]
	return !blocked
}

// Clamp прижимает координату к границам поля.
func (t Terrain) Clamp(c domain.Coordinate) domain.Coordinate {
	return domain.Pt(
		min(max(c.X, 0), t.Width-1),
		min(max(c.Y, 0), t.Height-1),
	)
}

// MovementResult - результат вычисления движения
type MovementResult struct {
	To        domain.Coordinate
	HasMoved  bool
	BlockedBy *domain.Adversary // Если врезались в противника
	IsWall    bool              // Граница, стена или объект
}

// CalculateMove вычисляет шаг из from в направлении d. Не меняет состояние мира!
// blocker возвращает противника, который мешает встать на клетку (или nil).
func CalculateMove(from domain.Coordinate, d domain.Direction, t Terrain, blocker func(domain.Coordinate) *domain.Adversary) MovementResult {
	if d == domain.DirNone {
		return MovementResult{To: from}
	}

	to := t.Clamp(from.Step(d))
	res := MovementResult{To: to}

	// 1. Границы (шаг прижат обратно), стены и объекты
	if to == from || !t.Passable(to) {
		res.IsWall = true
		return res
	}

	// 2. Противники
	if blocker != nil {
		if other := blocker(to); other != nil {
			res.BlockedBy = other
			return res
		}
	}

	res.HasMoved = true
	return res
}
