package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Step(t *testing.T) {
	c := Pt(3, 3)
	assert.Equal(t, Pt(3, 2), c.Step(DirUp))
	assert.Equal(t, Pt(3, 4), c.Step(DirDown))
	assert.Equal(t, Pt(2, 3), c.Step(DirLeft))
	assert.Equal(t, Pt(4, 3), c.Step(DirRight))
	assert.Equal(t, c, c.Step(DirNone))

	for _, d := range Cardinals {
		assert.Equal(t, c, c.Step(d).Step(d.Opposite()), "шаг %s и обратно", d)
	}
}

func TestCoordinate_Distances(t *testing.T) {
	a, b := Pt(1, 1), Pt(4, 3)
	assert.Equal(t, 5, a.Manhattan(b))
	assert.Equal(t, 3, a.Chebyshev(b))
	assert.True(t, a.In(2, 2))
	assert.False(t, b.In(4, 4))
	assert.False(t, Pt(-1, 0).In(4, 4))
	assert.True(t, Pt(9, 0).Less(Pt(0, 1)))
}

func TestDirection_Parse(t *testing.T) {
	d, ok := ParseDirection("left")
	require.True(t, ok)
	assert.Equal(t, DirLeft, d)

	_, ok = ParseDirection("north")
	assert.False(t, ok)

	d, ok = DirectionFromDelta(0, 1)
	require.True(t, ok)
	assert.Equal(t, DirDown, d)

	_, ok = DirectionFromDelta(1, 1)
	assert.False(t, ok, "диагональ недопустима")
}

func TestWallSet(t *testing.T) {
	w := NewWallSet(Pt(2, 1), Pt(0, 0), Pt(1, 1))
	w.Add(Pt(0, 0))

	assert.Equal(t, 3, w.Len())
	assert.True(t, w.Has(Pt(1, 1)))
	assert.False(t, w.Has(Pt(5, 5)))
	assert.Equal(t, []Coordinate{Pt(0, 0), Pt(1, 1), Pt(2, 1)}, w.Slice())

	var empty WallSet
	assert.False(t, empty.Has(Pt(0, 0)))
	assert.Equal(t, 0, empty.Len())
}

func TestAdversary_Lifecycle(t *testing.T) {
	a := NewAdversary(AdversarySpec{Kind: Pursuer, Start: Pt(2, 2)})
	assert.True(t, a.Alive())
	assert.True(t, a.Activated)
	assert.False(t, a.Dormant())

	a.Pos = Pt(5, 5)
	a.Activated = false
	a.Cooldown = 3
	assert.True(t, a.Dormant())

	a.Kill()
	assert.False(t, a.Alive())
	assert.False(t, a.Dormant(), "мертвый противник не считается спящим")

	a.Reset()
	assert.Equal(t, Pt(2, 2), a.Pos)
	assert.True(t, a.Alive())
	assert.True(t, a.Activated)
	assert.Zero(t, a.Cooldown)
	assert.Equal(t, DirNone, a.Facing)
	assert.Equal(t, "PURSUER", a.Kind.String())
}

type fxRecorder struct{ revealed int }

func (f *fxRecorder) RevealPath() { f.revealed++ }

func TestLevel_CopiesContainers(t *testing.T) {
	specs := []AdversarySpec{{Kind: Wanderer, Start: Pt(1, 0)}}
	items := map[Coordinate]Interactable{Pt(0, 1): Treasure{}}
	lvl := NewLevel("LEVEL 1", 3, 3, 0, NewWallSet(), Pt(0, 0), Pt(2, 2), specs, items)

	specs[0].Start = Pt(9, 9)
	delete(items, Pt(0, 1))

	assert.Equal(t, Pt(1, 0), lvl.AdversarySpecs()[0].Start)
	assert.Len(t, lvl.Interactables(), 1)

	got := lvl.AdversarySpecs()
	got[0].Kind = Pursuer
	assert.Equal(t, Wanderer, lvl.AdversarySpecs()[0].Kind)

	spawned := lvl.SpawnAdversaries()
	require.Len(t, spawned, 1)
	spawned[0].Kill()
	assert.True(t, lvl.SpawnAdversaries()[0].Alive(), "каждый вызов выдает свежих противников")

	fx := &fxRecorder{}
	lvl.Interactables()[Pt(0, 1)].Interact(fx)
	assert.Equal(t, 1, fx.revealed)
	assert.Equal(t, []Coordinate{Pt(0, 1)}, lvl.InteractableCoords())
}
