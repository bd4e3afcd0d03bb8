package maze

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/internal/domain"
)

func assertConnected(t *testing.T, res Result) {
	t.Helper()

	open := OpenCells(res.Width, res.Height, res.Walls)
	reach := Reachable(res.Width, res.Height, res.Walls, res.Start, nil)

	require.Equal(t, len(open), reach.Size(), "есть изолированные клетки")
	for _, c := range open {
		assert.True(t, reach.Has(c), "клетка %s недостижима", c)
	}
}

func TestGenerate_Connectivity(t *testing.T) {
	sizes := []struct{ w, h int }{
		{2, 2}, {3, 5}, {10, 10}, {11, 11}, {25, 25}, {40, 17}, {60, 60},
	}

	for _, sz := range sizes {
		for seed := int64(1); seed <= 25; seed++ {
			for difficulty := 0; difficulty <= 2; difficulty++ {
				g := NewGenerator(difficulty, rand.New(rand.NewSource(seed)))
				res := g.Generate(sz.w, sz.h)

				assertConnected(t, res)
				assert.False(t, res.Walls.Has(res.Start), "старт в стене")
				assert.False(t, res.Walls.Has(res.Exit), "выход в стене")
				assert.Zero(t, res.Start.X%2)
				assert.Zero(t, res.Start.Y%2)
			}
		}
	}
}

func TestGenerate_TenByTenScenario(t *testing.T) {
	g := NewGenerator(0, rand.New(rand.NewSource(42)))
	res := g.Generate(10, 10)

	assertConnected(t, res)
	assert.False(t, res.Walls.Has(res.Exit))
	assert.True(t, res.Exit.In(10, 10))
}

func TestGenerate_NoHallsOnSmallGrids(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := NewGenerator(2, rand.New(rand.NewSource(seed)))
		res := g.Generate(8, 8)

		assert.Empty(t, res.Halls)
		assert.Empty(t, res.Adversaries)
	}
}

func TestGenerate_HallsAreOpenRooms(t *testing.T) {
	total := 0
	for seed := int64(0); seed < 20; seed++ {
		g := NewGenerator(0, rand.New(rand.NewSource(seed)))
		res := g.Generate(31, 31)

		assert.LessOrEqual(t, len(res.Halls), 31*31/domain.HallAreaDivisor)
		for _, h := range res.Halls {
			total++
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					c := domain.Pt(h.X+dx, h.Y+dy)
					assert.False(t, res.Walls.Has(c), "зал %s: клетка %s закрыта", h, c)
				}
			}
		}
		for _, a := range res.Adversaries {
			assert.Equal(t, domain.Pursuer, a.Kind)
			assert.Contains(t, res.Halls, a.Start)
		}
	}
	assert.Positive(t, total, "на 31x31 должны появляться залы")
}

func TestGenerate_SpawnChance(t *testing.T) {
	assert.Equal(t, 5, SpawnChance(0))
	assert.Equal(t, 3, SpawnChance(1))
	assert.Equal(t, 1, SpawnChance(2))
	assert.Equal(t, 1, SpawnChance(7))

	// При шансе 1 каждый зал получает преследователя
	g := NewGenerator(2, rand.New(rand.NewSource(3)))
	res := g.Generate(41, 41)
	assert.Len(t, res.Adversaries, len(res.Halls))
}

func TestGenerate_RegenerationResetsState(t *testing.T) {
	g := NewGenerator(2, rand.New(rand.NewSource(9)))

	big := g.Generate(41, 41)
	bigAdversaries := len(big.Adversaries)

	small := g.Generate(6, 6)
	assert.Empty(t, small.Halls)
	assert.Empty(t, small.Adversaries)
	assertConnected(t, small)

	// Прошлый результат не затронут
	assert.Len(t, big.Adversaries, bigAdversaries)

	again := g.Generate(41, 41)
	assertConnected(t, again)
	assert.LessOrEqual(t, len(again.Halls), 41*41/domain.HallAreaDivisor)
}

func TestBuilder_InvalidDimensions(t *testing.T) {
	_, err := NewLevel("bad", rand.New(rand.NewSource(1))).WithSize(1, 10).Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))
}

func TestBuilder_Build(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := NewLevel("LEVEL 1", rand.New(rand.NewSource(seed))).
			WithSize(25, 25).
			WithDifficulty(1).
			SpawnWanderers(2).
			PlaceTreasures(2)

		lvl, err := b.Build()
		require.NoError(t, err)

		assert.Equal(t, "LEVEL 1", lvl.Name())
		assert.Equal(t, 25, lvl.Width())
		assert.Equal(t, 1, lvl.Difficulty())
		assert.Equal(t, b.Result().Start, lvl.Start())

		items := lvl.Interactables()
		assert.Len(t, items, 2)

		// Сундуки стоят в тупиках и не рвут связность
		blocked := func(c domain.Coordinate) bool {
			_, ok := items[c]
			return ok
		}
		reach := Reachable(lvl.Width(), lvl.Height(), lvl.Walls(), lvl.Start(), blocked)
		open := OpenCells(lvl.Width(), lvl.Height(), lvl.Walls())
		assert.Equal(t, len(open)-len(items), reach.Size())
		for c := range items {
			assert.NotEqual(t, lvl.Start(), c)
			assert.NotEqual(t, lvl.Exit(), c)
			assert.False(t, lvl.Walls().Has(c))
		}

		wanderers := 0
		starts := map[domain.Coordinate]bool{}
		for _, spec := range lvl.AdversarySpecs() {
			assert.False(t, starts[spec.Start], "два противника на одной клетке")
			starts[spec.Start] = true
			assert.NotEqual(t, lvl.Start(), spec.Start)
			assert.False(t, blocked(spec.Start))

			if spec.Kind == domain.Wanderer {
				wanderers++
				assert.True(t, reach.Has(spec.Start))
				assert.GreaterOrEqual(t, spec.Start.Manhattan(lvl.Start()), wandererMinDistance)
			}
		}
		assert.Equal(t, 2, wanderers)
	}
}
