package domain

import (
	"fmt"
	"strings"
)

// Direction - направление шага по сетке (4-связность).
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Cardinals задает порядок обхода соседей во всех BFS.
// От порядка зависит выбор направления при равных расстояниях,
// поэтому полный и инкрементальный пересчёт обязаны использовать один и тот же.
var Cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

var directionDeltas = [...][2]int{
	DirNone:  {0, 0},
	DirUp:    {0, -1},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirRight: {1, 0},
}

var directionNames = map[Direction]string{
	DirNone:  "NONE",
	DirUp:    "UP",
	DirDown:  "DOWN",
	DirLeft:  "LEFT",
	DirRight: "RIGHT",
}

var directionByName = map[string]Direction{
	"NONE":  DirNone,
	"UP":    DirUp,
	"DOWN":  DirDown,
	"LEFT":  DirLeft,
	"RIGHT": DirRight,
}

// Delta возвращает смещение (dx, dy). Для неизвестных значений - (0, 0).
func (d Direction) Delta() (int, int) {
	if int(d) >= len(directionDeltas) {
		return 0, 0
	}
	v := directionDeltas[d]
	return v[0], v[1]
}

// Opposite возвращает противоположное направление. NONE остается NONE.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// String реализует интерфейс Stringer (для fmt.Printf и JSON DTO)
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "NONE"
}

// ParseDirection конвертирует строку из JSON в Direction.
// Второе значение false, если строка не распознана.
func ParseDirection(s string) (Direction, bool) {
	d, ok := directionByName[strings.ToUpper(strings.TrimSpace(s))]
	return d, ok
}

// DirectionFromDelta конвертирует смещение в направление.
// Допустим только единичный шаг по одной оси.
func DirectionFromDelta(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == -1:
		return DirUp, true
	case dx == 0 && dy == 1:
		return DirDown, true
	case dx == -1 && dy == 0:
		return DirLeft, true
	case dx == 1 && dy == 0:
		return DirRight, true
	case dx == 0 && dy == 0:
		return DirNone, true
	}
	return DirNone, false
}

// MarshalText пишет направление в JSON строкой ("UP").
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText читает направление из строки.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("unknown direction %q", string(b))
	}
	*d = v
	return nil
}
