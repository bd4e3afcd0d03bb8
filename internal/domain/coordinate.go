package domain

import "fmt"

// Coordinate - клетка сетки. Value-type, используется как ключ map.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt - короткий конструктор Coordinate.
func Pt(x, y int) Coordinate { return Coordinate{X: x, Y: y} }

// Step возвращает соседнюю клетку в направлении d (не меняя текущую).
func (c Coordinate) Step(d Direction) Coordinate {
	dx, dy := d.Delta()
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan возвращает манхэттенское расстояние до другой клетки.
func (c Coordinate) Manhattan(other Coordinate) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Chebyshev возвращает расстояние Чебышёва (8-связность).
func (c Coordinate) Chebyshev(other Coordinate) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

// In проверяет, что клетка лежит внутри поля width x height.
func (c Coordinate) In(width, height int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < width && c.Y < height
}

// Less - построчный порядок (сначала Y, потом X). Нужен для стабильного вывода.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
