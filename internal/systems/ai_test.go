package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/internal/domain"
)

type fakeArena struct {
	terrain Terrain
	paths   *PathField
	player  domain.Coordinate
	others  []*domain.Adversary
	spawned []domain.AdversarySpec
}

func newFakeArena(t Terrain, player domain.Coordinate, others ...*domain.Adversary) *fakeArena {
	f := NewPathField(t)
	f.Initiate(player)
	return &fakeArena{terrain: t, paths: f, player: player, others: others}
}

func (a *fakeArena) Paths() *PathField { return a.paths }
func (a *fakeArena) Player() domain.Coordinate { return a.player }
func (a *fakeArena) Passable(c domain.Coordinate) bool { return a.terrain.Passable(c) }
func (a *fakeArena) Spawn(spec domain.AdversarySpec) { a.spawned = append(a.spawned, spec) }

func (a *fakeArena) Occupied(c domain.Coordinate) bool {
	for _, o := range a.others {
		if o.Alive() && o.Pos == c {
			return true
		}
	}
	return false
}

func TestPursuer_ApproachesPlayer(t *testing.T) {
	player := domain.Pt(5, 3)
	for seed := int64(0); seed < 100; seed++ {
		p := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(5, 7)})
		arena := newFakeArena(openTerrain(11, 11), player, p)

		before := p.Pos.Manhattan(player)
		out := UpdateAdversary(p, arena, rand.New(rand.NewSource(seed)), 0)

		assert.True(t, out.Moved)
		assert.Less(t, p.Pos.Manhattan(player), before)
		assert.False(t, out.CaughtPlayer)
		if !out.Overheated {
			assert.Equal(t, domain.DirUp, p.Facing)
		}
	}
}

func TestPursuer_DoesNotStack(t *testing.T) {
	blocker := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Wanderer, Start: domain.Pt(2, 1)})
	p := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(2, 2)})
	arena := newFakeArena(terrainFromRows(
		"#.#",
		"#.#",
		"#.#",
	), domain.Pt(1, 0), blocker, p)
	blocker.Pos = domain.Pt(1, 1)
	p.Pos = domain.Pt(1, 2)

	out := UpdateAdversary(p, arena, rand.New(rand.NewSource(1)), 0)
	assert.False(t, out.Moved)
	assert.Equal(t, domain.Pt(1, 2), p.Pos)

	// Мертвый не мешает
	blocker.Kill()
	p.Activated = true
	out = UpdateAdversary(p, arena, rand.New(rand.NewSource(1)), 0)
	assert.True(t, out.Moved)
	assert.Equal(t, domain.Pt(1, 1), p.Pos)
}

func TestPursuer_Overheat(t *testing.T) {
	for _, difficulty := range []int{0, 1, 2, 5} {
		found := false
		for seed := int64(0); seed < 500 && !found; seed++ {
			p := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(0, 4)})
			arena := newFakeArena(openTerrain(5, 5), domain.Pt(4, 0))

			out := UpdateAdversary(p, arena, rand.New(rand.NewSource(seed)), difficulty)
			if !out.Overheated {
				continue
			}
			found = true

			assert.False(t, p.Activated)
			assert.True(t, p.Dormant())
			assert.Equal(t, max(0, 4-difficulty), p.Cooldown)
			assert.Equal(t, domain.DirNone, p.Facing)
		}
		require.True(t, found, "difficulty %d: перегрев так и не случился", difficulty)
	}
}

func TestPursuer_DormantCountsDown(t *testing.T) {
	p := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(0, 0)})
	p.Activated = false
	p.Cooldown = 2
	arena := newFakeArena(openTerrain(5, 5), domain.Pt(4, 4))
	rng := rand.New(rand.NewSource(1))

	out := UpdateAdversary(p, arena, rng, 0)
	assert.False(t, out.Moved)
	assert.False(t, out.Woke)
	assert.Equal(t, 1, p.Cooldown)

	out = UpdateAdversary(p, arena, rng, 0)
	assert.True(t, out.Woke)
	assert.True(t, p.Activated)
	assert.Equal(t, domain.Pt(0, 0), p.Pos, "в ход пробуждения не двигается")

	// Нулевой откат: просыпается на следующем ходу
	p.Activated = false
	p.Cooldown = 0
	out = UpdateAdversary(p, arena, rng, 4)
	assert.True(t, out.Woke)
}

func TestPursuer_UnreachableStaysPut(t *testing.T) {
	terrain := terrainFromRows(
		"..#..",
		"..#..",
	)
	for seed := int64(0); seed < 50; seed++ {
		p := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(4, 1)})
		arena := newFakeArena(terrain, domain.Pt(0, 0))

		out := UpdateAdversary(p, arena, rand.New(rand.NewSource(seed)), 0)
		assert.Equal(t, Outcome{}, out)
		assert.Equal(t, domain.Pt(4, 1), p.Pos)
		assert.True(t, p.Activated)
	}
}

func TestPursuer_CatchesPlayer(t *testing.T) {
	p := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(2, 3)})
	arena := newFakeArena(openTerrain(5, 5), domain.Pt(2, 2))

	out := UpdateAdversary(p, arena, rand.New(rand.NewSource(7)), 0)
	assert.True(t, out.CaughtPlayer)
	assert.Equal(t, domain.Pt(2, 2), p.Pos)
}

func TestAdversary_DeadIsInert(t *testing.T) {
	for _, kind := range []domain.AdversaryKind{domain.Pursuer, domain.Wanderer} {
		a := domain.NewAdversary(domain.AdversarySpec{Kind: kind, Start: domain.Pt(2, 3)})
		a.Kill()
		arena := newFakeArena(openTerrain(5, 5), domain.Pt(2, 2))

		out := UpdateAdversary(a, arena, rand.New(rand.NewSource(1)), 0)
		assert.Equal(t, Outcome{}, out)
		assert.Equal(t, domain.Pt(2, 3), a.Pos)
	}
}

func TestWanderer_RandomWalk(t *testing.T) {
	terrain := terrainFromRows(
		".....",
		".#T#.",
		".....",
	)
	blocker := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Pursuer, Start: domain.Pt(4, 2)})
	w := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Wanderer, Start: domain.Pt(0, 0)})
	arena := newFakeArena(terrain, domain.Pt(-10, -10), blocker)
	rng := rand.New(rand.NewSource(11))

	moves, spawns := 0, 0
	for i := 0; i < 2000; i++ {
		before := w.Pos
		out := UpdateAdversary(w, arena, rng, 0)

		require.True(t, terrain.Passable(w.Pos), "шаг %d: %s непроходима", i, w.Pos)
		require.NotEqual(t, blocker.Pos, w.Pos)
		if out.Moved {
			moves++
			assert.Equal(t, 1, before.Manhattan(w.Pos))
			assert.Equal(t, w.Pos, before.Step(w.Facing))
		} else {
			assert.Equal(t, before, w.Pos)
		}
		if out.Spawned {
			spawns++
			require.True(t, out.Moved, "потомок только на освободившейся клетке")
			assert.Equal(t, before, arena.spawned[len(arena.spawned)-1].Start)
			assert.Equal(t, domain.Wanderer, arena.spawned[len(arena.spawned)-1].Kind)
		}
	}
	assert.Positive(t, moves)
	assert.Equal(t, spawns, len(arena.spawned))
	assert.Positive(t, spawns, "за 2000 ходов должен появиться потомок")
}

func TestWanderer_CatchesPlayer(t *testing.T) {
	terrain := terrainFromRows(
		"###",
		"#..",
		"###",
	)
	caught := false
	for seed := int64(0); seed < 50 && !caught; seed++ {
		w := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Wanderer, Start: domain.Pt(1, 1)})
		arena := newFakeArena(terrain, domain.Pt(2, 1))
		out := UpdateAdversary(w, arena, rand.New(rand.NewSource(seed)), 0)
		if out.CaughtPlayer {
			caught = true
			assert.Equal(t, domain.Pt(2, 1), w.Pos)
		}
	}
	assert.True(t, caught)
}

func TestCalculateMove(t *testing.T) {
	terrain := terrainFromRows(
		"..#",
		"T..",
	)
	other := domain.NewAdversary(domain.AdversarySpec{Kind: domain.Wanderer, Start: domain.Pt(1, 1)})
	blocker := func(c domain.Coordinate) *domain.Adversary {
		if other.Alive() && other.Pos == c {
			return other
		}
		return nil
	}

	res := CalculateMove(domain.Pt(1, 0), domain.DirRight, terrain, blocker)
	assert.True(t, res.IsWall)
	assert.False(t, res.HasMoved)

	res = CalculateMove(domain.Pt(0, 0), domain.DirDown, terrain, blocker)
	assert.True(t, res.IsWall, "сундук непроходим")

	res = CalculateMove(domain.Pt(1, 0), domain.DirDown, terrain, blocker)
	assert.Same(t, other, res.BlockedBy)

	res = CalculateMove(domain.Pt(0, 0), domain.DirUp, terrain, blocker)
	assert.True(t, res.IsWall, "граница")

	res = CalculateMove(domain.Pt(0, 0), domain.DirRight, terrain, nil)
	assert.True(t, res.HasMoved)
	assert.Equal(t, domain.Pt(1, 0), res.To)

	assert.Equal(t, domain.Pt(0, 1), terrain.Clamp(domain.Pt(-3, 2)))
	assert.Equal(t, domain.Pt(2, 1), terrain.Clamp(domain.Pt(9, 9)))
}
