package maze

import (
	"errors"
	"fmt"
	"math/rand"

	"labyrinth-server/internal/domain"
)

// ErrInvalidDimensions - сетка меньше 2x2 не поддерживается генератором.
var ErrInvalidDimensions = errors.New("maze: width and height must be at least 2")

// Минимальное манхэттенское расстояние от старта до блуждающего
const wandererMinDistance = 4

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	name       string
	width      int
	height     int
	difficulty int
	wanderers  int
	treasures  int
	rng        *rand.Rand

	result Result
}

// NewLevel создает новый builder для уровня
func NewLevel(name string, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		name:   name,
		width:  DefaultWidth,
		height: DefaultHeight,
		rng:    rng,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithDifficulty задает сложность (шанс преследователей в залах)
func (b *LevelBuilder) WithDifficulty(difficulty int) *LevelBuilder {
	b.difficulty = difficulty
	return b
}

// SpawnWanderers добавляет n блуждающих на случайные проходы
func (b *LevelBuilder) SpawnWanderers(n int) *LevelBuilder {
	b.wanderers = max(0, n)
	return b
}

// PlaceTreasures кладет n сундуков в тупики
func (b *LevelBuilder) PlaceTreasures(n int) *LevelBuilder {
	b.treasures = max(0, n)
	return b
}

// Result возвращает сырой результат последней генерации (для отладки и тестов).
func (b *LevelBuilder) Result() Result {
	return b.result
}

// Build генерирует лабиринт и собирает неизменяемый уровень
func (b *LevelBuilder) Build() (*domain.Level, error) {
	if b.width < 2 || b.height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, b.width, b.height)
	}

	// 1. Лабиринт
	res := NewGenerator(b.difficulty, b.rng).Generate(b.width, b.height)
	if res.Exit == res.Start {
		// Выход на старте бессмыслен, если есть другие проходы
		if open := OpenCells(res.Width, res.Height, res.Walls); len(open) > 1 {
			for res.Exit == res.Start {
				res.Exit = open[b.rng.Intn(len(open))]
			}
		}
	}
	b.result = res

	occupied := make(map[domain.Coordinate]bool, len(res.Adversaries)+b.wanderers+b.treasures+2)
	occupied[res.Start] = true
	occupied[res.Exit] = true
	for _, a := range res.Adversaries {
		occupied[a.Start] = true
	}

	// 2. Сундуки
	items := b.placeTreasures(res, occupied)

	// 3. Блуждающие
	specs := append([]domain.AdversarySpec(nil), res.Adversaries...)
	specs = append(specs, b.placeWanderers(res, occupied, items)...)

	return domain.NewLevel(
		b.name,
		b.width, b.height, b.difficulty,
		res.Walls,
		res.Start, res.Exit,
		specs,
		items,
	), nil
}

// placeTreasures ставит сундуки в тупики. Тупики пересчитываются после
// каждой установки: сундук непроходим, а лист дерева не рвет связность.
func (b *LevelBuilder) placeTreasures(res Result, occupied map[domain.Coordinate]bool) map[domain.Coordinate]domain.Interactable {
	items := make(map[domain.Coordinate]domain.Interactable, b.treasures)
	blocked := func(c domain.Coordinate) bool {
		_, ok := items[c]
		return ok
	}

	for i := 0; i < b.treasures; i++ {
		candidates := make([]domain.Coordinate, 0)
		for _, c := range OpenCells(res.Width, res.Height, res.Walls) {
			if occupied[c] || blocked(c) {
				continue
			}
			if openNeighbors(res, c, blocked) == 1 {
				candidates = append(candidates, c)
			}
		}
		if len(candidates) == 0 {
			break
		}

		c := candidates[b.rng.Intn(len(candidates))]
		items[c] = domain.Treasure{Text: "The chest reveals the way out."}
		occupied[c] = true
	}
	return items
}

// placeWanderers выбирает клетки, достижимые со старта, подальше от игрока.
func (b *LevelBuilder) placeWanderers(res Result, occupied map[domain.Coordinate]bool, items map[domain.Coordinate]domain.Interactable) []domain.AdversarySpec {
	if b.wanderers == 0 {
		return nil
	}

	reach := Reachable(res.Width, res.Height, res.Walls, res.Start, func(c domain.Coordinate) bool {
		_, ok := items[c]
		return ok
	})

	far := make([]domain.Coordinate, 0)
	near := make([]domain.Coordinate, 0)
	for _, c := range OpenCells(res.Width, res.Height, res.Walls) {
		if occupied[c] || !reach.Has(c) {
			continue
		}
		if c.Manhattan(res.Start) >= wandererMinDistance {
			far = append(far, c)
		} else {
			near = append(near, c)
		}
	}

	specs := make([]domain.AdversarySpec, 0, b.wanderers)
	for i := 0; i < b.wanderers; i++ {
		pool := &far
		if len(far) == 0 {
			pool = &near
		}
		if len(*pool) == 0 {
			break
		}

		idx := b.rng.Intn(len(*pool))
		c := (*pool)[idx]
		(*pool)[idx] = (*pool)[len(*pool)-1]
		*pool = (*pool)[:len(*pool)-1]

		occupied[c] = true
		specs = append(specs, domain.AdversarySpec{Kind: domain.Wanderer, Start: c})
	}
	return specs
}

func openNeighbors(res Result, c domain.Coordinate, blocked func(domain.Coordinate) bool) int {
	n := 0
	for _, d := range domain.Cardinals {
		nb := c.Step(d)
		if nb.In(res.Width, res.Height) && !res.Walls.Has(nb) && !blocked(nb) {
			n++
		}
	}
	return n
}
