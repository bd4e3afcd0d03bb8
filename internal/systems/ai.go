package systems

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"labyrinth-server/internal/domain"
	"labyrinth-server/pkg/logger"
)

// Arena - то, что противнику нужно знать о мире на своем ходу.
type Arena interface {
	Paths() *PathField
	Player() domain.Coordinate
	Occupied(c domain.Coordinate) bool // живой противник на клетке
	Passable(c domain.Coordinate) bool // границы, стены, объекты
	Spawn(spec domain.AdversarySpec)   // отложенное появление после прохода
}

// Outcome - итог хода одного противника.
type Outcome struct {
	Moved        bool
	CaughtPlayer bool
	Spawned      bool
	Overheated   bool
	Woke         bool
}

// Варианты хода блуждающего: стоять или шаг в одну из сторон
var wanderChoices = [5]domain.Direction{
	domain.DirNone, domain.DirUp, domain.DirDown, domain.DirLeft, domain.DirRight,
}

// UpdateAdversary выполняет ход противника. Мертвые не ходят.
func UpdateAdversary(a *domain.Adversary, arena Arena, rng *rand.Rand, difficulty int) Outcome {
	if a.Dead {
		return Outcome{}
	}

	switch a.Kind {
	case domain.Pursuer:
		return updatePursuer(a, arena, rng, difficulty)
	case domain.Wanderer:
		return updateWanderer(a, arena, rng)
	default:
		logger.Log.WithField("kind", a.Kind).Warn("Unknown adversary kind")
		return Outcome{}
	}
}

func updatePursuer(a *domain.Adversary, arena Arena, rng *rand.Rand, difficulty int) Outcome {
	var out Outcome

	// 1. Перегрев: отсчитываем и просыпаемся
	if !a.Activated {
		a.Cooldown--
		if a.Cooldown <= 0 {
			a.Cooldown = 0
			a.Activated = true
			out.Woke = true
		}
		return out
	}

	// 2. Шаг по полю путей. Нет записи - клетка недостижима, стоим.
	entry, ok := arena.Paths().Lookup(a.Pos)
	if ok {
		if entry.Dir != domain.DirNone {
			to := a.Pos.Step(entry.Dir)
			if !arena.Occupied(to) {
				a.Pos = to
				a.Facing = entry.Dir
				out.Moved = true
			}
		}

		// 3. Бросок на перегрев
		if rng.Intn(difficulty*domain.OverheatSpread+domain.OverheatBase) == 0 {
			a.Activated = false
			a.Cooldown = max(0, domain.DormantBase-difficulty)
			a.Facing = domain.DirNone
			out.Overheated = true

			logger.Log.WithFields(logrus.Fields{
				"pos":      a.Pos.String(),
				"cooldown": a.Cooldown,
			}).Debug("Pursuer overheated")
		}
	}

	// 4. Поймал игрока
	if a.Pos == arena.Player() {
		out.CaughtPlayer = true
	}
	return out
}

func updateWanderer(a *domain.Adversary, arena Arena, rng *rand.Rand) Outcome {
	var out Outcome

	// 1. Случайный шаг
	d := wanderChoices[rng.Intn(len(wanderChoices))]
	a.Facing = d

	from := a.Pos
	if d != domain.DirNone {
		to := from.Step(d)
		if arena.Passable(to) && !arena.Occupied(to) {
			a.Pos = to
			out.Moved = true
		}
	}

	// 2. Размножение: бросок всегда, потомок только на освободившейся клетке
	if rng.Intn(domain.WandererBreedRange) == 0 && out.Moved {
		arena.Spawn(domain.AdversarySpec{Kind: domain.Wanderer, Start: from})
		out.Spawned = true

		logger.Log.WithField("pos", from.String()).Debug("Wanderer spawned offspring")
	}

	// 3. Поймал игрока
	if a.Pos == arena.Player() {
		out.CaughtPlayer = true
	}
	return out
}
