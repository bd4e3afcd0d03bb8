package maze

import (
	"math/rand"

	"labyrinth-server/internal/domain"
)

// Размеры по умолчанию
const (
	DefaultWidth  = 25
	DefaultHeight = 25
)

// cell - клетка сетки генерации. Живет только внутри Generate.
type cell struct {
	pos  domain.Coordinate
	wall bool
}

// Result - итог одной генерации.
type Result struct {
	Width, Height int
	Walls         domain.WallSet
	Start         domain.Coordinate
	Exit          domain.Coordinate
	Adversaries   []domain.AdversarySpec
	Halls         []domain.Coordinate // центры залов 3x3
}

// Generator вырезает лабиринт рандомизированным DFS по сетке
// половинного разрешения (комнаты только на четных координатах).
// Ширина или высота <= 1 не поддерживаются: поведение не определено.
type Generator struct {
	difficulty int
	rng        *rand.Rand

	width, height int
	grid          [][]cell // [y][x]

	hallsLeft    int
	hallCooldown int
	spawnChance  int

	adversaries []domain.AdversarySpec
	halls       []domain.Coordinate
}

// NewGenerator создает генератор. Сложность передается явно.
func NewGenerator(difficulty int, rng *rand.Rand) *Generator {
	return &Generator{
		difficulty: difficulty,
		rng:        rng,
	}
}

// SpawnChance - знаменатель шанса появления преследователя в зале.
func SpawnChance(difficulty int) int {
	return max(1, domain.SpawnChanceBase-difficulty*2)
}

// Generate строит новый лабиринт. Все внутреннее состояние
// сбрасывается, между генерациями ничего не протекает.
func (g *Generator) Generate(width, height int) Result {
	g.reset(width, height)

	// 1. Случайный стартовый узел на четных координатах
	start := g.at(g.rng.Intn(width/2)*2, g.rng.Intn(height/2)*2)
	start.wall = false

	stack := []*cell{start}

	// 2. DFS
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		next := g.randomUnvisitedNeighbor(current)

		if next == nil {
			stack = stack[:len(stack)-1]
			continue
		}

		next.wall = false
		g.openBetween(current, next)
		if g.carveHall(current, next, &stack) {
			g.hallsLeft--
		}
		stack = append(stack, next)
		g.hallCooldown--
	}

	// 3. Выход: случайная клетка, пока не попадем в проход
	var exit *cell
	for exit == nil || exit.wall {
		exit = g.at(g.rng.Intn(width), g.rng.Intn(height))
	}

	return Result{
		Width:       width,
		Height:      height,
		Walls:       g.walls(),
		Start:       start.pos,
		Exit:        exit.pos,
		Adversaries: g.adversaries,
		Halls:       g.halls,
	}
}

func (g *Generator) reset(width, height int) {
	g.width = width
	g.height = height

	g.grid = make([][]cell, height)
	for y := 0; y < height; y++ {
		row := make([]cell, width)
		for x := 0; x < width; x++ {
			row[x] = cell{pos: domain.Pt(x, y), wall: true}
		}
		g.grid[y] = row
	}

	g.hallsLeft = width * height / domain.HallAreaDivisor
	g.hallCooldown = domain.HallCooldown
	g.spawnChance = SpawnChance(g.difficulty)
	g.adversaries = make([]domain.AdversarySpec, 0)
	g.halls = make([]domain.Coordinate, 0)
}

func (g *Generator) at(x, y int) *cell {
	return &g.grid[y][x]
}

// randomUnvisitedNeighbor - случайный сосед через одну клетку,
// который еще стена. Порядок: влево, вправо, вверх, вниз.
func (g *Generator) randomUnvisitedNeighbor(c *cell) *cell {
	x, y := c.pos.X, c.pos.Y
	neighbors := make([]*cell, 0, 4)

	if x > 1 && g.at(x-2, y).wall {
		neighbors = append(neighbors, g.at(x-2, y))
	}
	if x < g.width-2 && g.at(x+2, y).wall {
		neighbors = append(neighbors, g.at(x+2, y))
	}
	if y > 1 && g.at(x, y-2).wall {
		neighbors = append(neighbors, g.at(x, y-2))
	}
	if y < g.height-2 && g.at(x, y+2).wall {
		neighbors = append(neighbors, g.at(x, y+2))
	}

	if len(neighbors) == 0 {
		return nil
	}
	return neighbors[g.rng.Intn(len(neighbors))]
}

// openBetween открывает клетку между двумя узлами.
func (g *Generator) openBetween(a, b *cell) {
	g.at((a.pos.X+b.pos.X)/2, (a.pos.Y+b.pos.Y)/2).wall = false
}

// carveHall пытается пристроить зал 3x3 к свежему ребру current-next.
// Возвращает true, если зал вырезан.
func (g *Generator) carveHall(current, next *cell, stack *[]*cell) bool {
	if g.hallsLeft <= 0 || g.hallCooldown > 0 {
		return false
	}

	mx := (current.pos.X + next.pos.X) / 2
	my := (current.pos.Y + next.pos.Y) / 2
	if !(0 < mx-domain.HallMargin && mx+domain.HallMargin < g.width &&
		0 < my-domain.HallMargin && my+domain.HallMargin < g.height) {
		return false
	}

	// Отступ гарантирует, что клетки на расстоянии 2 лежат внутри сетки
	if current.pos.Y == next.pos.Y {
		for _, side := range [2]int{-2, 2} {
			a := g.at(current.pos.X, current.pos.Y+side)
			b := g.at(next.pos.X, next.pos.Y+side)
			if a.wall && b.wall {
				g.openHall(current, next, a, b, stack)
				g.spawnPursuer(domain.Pt(mx, current.pos.Y+side/2))
				return true
			}
		}
		return false
	}

	for _, side := range [2]int{-2, 2} {
		a := g.at(current.pos.X+side, current.pos.Y)
		b := g.at(next.pos.X+side, next.pos.Y)
		if a.wall && b.wall {
			g.openHall(current, next, a, b, stack)
			g.spawnPursuer(domain.Pt(current.pos.X+side/2, my))
			return true
		}
	}
	return false
}

// openHall открывает параллельную пару a-b и середину между ребрами.
// a и b кладутся в стек, чтобы DFS продолжил обход от них.
func (g *Generator) openHall(current, next, a, b *cell, stack *[]*cell) {
	g.openBetween(current, a)
	a.wall = false
	*stack = append(*stack, a)

	g.openBetween(next, b)
	b.wall = false
	*stack = append(*stack, b)

	// Центр зала и середина дальнего ребра
	g.openBetween(a, b)
	g.openBetween(g.at((current.pos.X+next.pos.X)/2, (current.pos.Y+next.pos.Y)/2),
		g.at((a.pos.X+b.pos.X)/2, (a.pos.Y+b.pos.Y)/2))
}

func (g *Generator) spawnPursuer(center domain.Coordinate) {
	g.halls = append(g.halls, center)
	if g.rng.Intn(g.spawnChance) == 0 {
		g.adversaries = append(g.adversaries, domain.AdversarySpec{
			Kind:  domain.Pursuer,
			Start: center,
		})
	}
}

// walls собирает оставшиеся стены.
func (g *Generator) walls() domain.WallSet {
	ws := domain.NewWallSet()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.grid[y][x].wall {
				ws.Add(g.grid[y][x].pos)
			}
		}
	}
	return ws
}
