package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/systems"
	"labyrinth-server/pkg/logger"
)

var (
	// ErrAutoSolveLocked - живы противники или маршрут еще не открыт.
	ErrAutoSolveLocked = errors.New("auto-solve is locked")
	// ErrTickInProgress - вызов изнутри текущего тика.
	ErrTickInProgress = errors.New("tick in progress")
)

// World - живое состояние уровня и протокол тика.
// Не потокобезопасен: доступ сериализует Session.
type World struct {
	level   *domain.Level
	terrain systems.Terrain
	rng     *rand.Rand

	player domain.Coordinate
	facing domain.Direction

	adversaries []*domain.Adversary
	pending     []domain.AdversarySpec // потомки, появятся после прохода
	paths       *systems.PathField

	slash         *domain.Coordinate
	slashCooldown int
	pathRevealed  bool

	tick   int
	inTick bool
	logs   []domain.LogEntry

	observers []Observer
	supplier  LevelSupplier
}

// NewWorld строит мир из уровня. Наблюдателей пока нет.
func NewWorld(level *domain.Level, rng *rand.Rand) *World {
	w := &World{rng: rng}
	w.load(level)
	return w
}

// SetSupplier подключает поставщика уровней.
func (w *World) SetSupplier(s LevelSupplier) {
	w.supplier = s
}

// Register добавляет наблюдателя и сразу отдает ему текущий уровень.
func (w *World) Register(o Observer) {
	w.observers = append(w.observers, o)
	o.OnNewLevel(w.Snapshot())
}

// --- Действия игрока ---

// MovePlayer - один тик: ход игрока, поле путей, ход противников, рассылка.
// Вложенные вызовы во время тика игнорируются.
func (w *World) MovePlayer(dir domain.Direction) {
	if w.inTick {
		logger.Log.WithField("dir", dir.String()).Debug("MovePlayer ignored: tick in progress")
		return
	}
	w.inTick = true
	defer func() { w.inTick = false }()

	w.tick++

	// 1. Остывание удара
	w.decaySlash()

	// 2-3. Шаг: границы, стены, объекты и спящие противники не пускают
	before := w.player
	w.facing = dir
	if res := systems.CalculateMove(w.player, dir, w.terrain, w.dormantAt); res.HasMoved {
		w.player = res.To
	}

	// 4. Шагнули на живого противника
	if a := w.liveAdversaryAt(w.player); a != nil {
		w.addLog(domain.EventCaught, fmt.Sprintf("You ran into a %s.", kindName(a.Kind)))
		w.resetLevel()
		return
	}

	w.updatePaths(w.player != before)
	if !w.adversaryPass() {
		return
	}
	w.notify()

	if w.player == w.level.Exit() {
		w.reachExit()
	}
}

// DoSlash убивает всех противников в квадрате 3x3 вокруг игрока.
// Ничего не делает, пока удар не остыл.
func (w *World) DoSlash() {
	if w.inTick || w.slashCooldown > 0 {
		return
	}
	w.inTick = true
	defer func() { w.inTick = false }()

	w.tick++

	pos := w.player
	w.slash = &pos
	w.slashCooldown = domain.SlashCooldown

	kills := 0
	for _, a := range w.adversaries {
		if a.Alive() && a.Pos.Chebyshev(w.player) <= domain.SlashRadius {
			a.Kill()
			kills++
		}
	}

	w.addLog(domain.EventSlash, fmt.Sprintf("Slash! %d down.", kills))
	logger.Log.WithFields(logrus.Fields{
		"level": w.level.Name(),
		"tick":  w.tick,
		"kills": kills,
	}).Info("Slash")

	w.notify()
	if w.adversaryPass() {
		w.notify()
	}
}

// DoInteraction применяет объект на клетке перед игроком.
func (w *World) DoInteraction() {
	if w.inTick {
		return
	}
	w.inTick = true
	defer func() { w.inTick = false }()

	w.tick++

	if w.facing != domain.DirNone {
		target := w.player.Step(w.facing)
		if it, ok := w.terrain.Items[target]; ok {
			it.Interact(w)
			w.addLog(domain.EventInteract, fmt.Sprintf("You open the %s.", it.Kind()))
		}
	}

	w.decaySlash()
	if w.adversaryPass() {
		w.notify()
	}
}

// RevealPath включает оверлей маршрута до выхода (эффект сундука).
func (w *World) RevealPath() {
	w.pathRevealed = true
}

// LevelReset возвращает уровень к исходному снимку. Идемпотентен.
func (w *World) LevelReset() {
	w.resetLevel()
}

// NewLevel полностью заменяет уровень. Наблюдатели получают OnNewLevel, затем OnUpdate.
func (w *World) NewLevel(level *domain.Level) {
	w.load(level)
	w.addLog(domain.EventNewLevel, fmt.Sprintf("%s begins.", level.Name()))

	logger.Log.WithFields(logrus.Fields{
		"level":       level.Name(),
		"size":        fmt.Sprintf("%dx%d", level.Width(), level.Height()),
		"adversaries": len(w.adversaries),
	}).Info("New level loaded")

	snap := w.Snapshot()
	for _, o := range w.observers {
		o.OnNewLevel(snap)
	}
	w.notify()
}

// CanAutoSolve: все противники мертвы и маршрут открыт.
func (w *World) CanAutoSolve() bool {
	return w.pathRevealed && w.AllAdversariesDead()
}

// AutoStep - один шаг автопрохождения по маршруту.
// more == false, когда маршрут был короче двух шагов (последний шаг сделан).
func (w *World) AutoStep() (bool, error) {
	if w.inTick {
		return false, ErrTickInProgress
	}
	if !w.CanAutoSolve() {
		return false, ErrAutoSolveLocked
	}

	route, err := w.paths.PathToEnd(w.level.Exit())
	if err != nil {
		return false, fmt.Errorf("auto-solve: %w", err)
	}

	more := len(route) >= 2
	w.MovePlayer(route[0].Dir)
	return more, nil
}

// Post добавляет сообщение команды в журнал (уйдет со следующим снимком).
func (w *World) Post(msgType, text string) {
	ev := domain.ParseEvent(msgType)
	if ev == domain.EventUnknown {
		ev = domain.EventInfo
	}
	w.addLog(ev, text)
}

// Notify заново рассылает текущее состояние (например, после подключения клиента).
func (w *World) Notify() {
	w.notify()
}

// --- Чтение ---

func (w *World) Level() *domain.Level { return w.level }
func (w *World) Player() domain.Coordinate { return w.player }
func (w *World) Facing() domain.Direction { return w.facing }
func (w *World) Paths() *systems.PathField { return w.paths }
func (w *World) Tick() int { return w.tick }
func (w *World) SlashCooldown() int { return w.slashCooldown }
func (w *World) PathRevealed() bool { return w.pathRevealed }
func (w *World) Terrain() systems.Terrain { return w.terrain }

// Adversaries возвращает копии противников.
func (w *World) Adversaries() []domain.Adversary {
	out := make([]domain.Adversary, len(w.adversaries))
	for i, a := range w.adversaries {
		out[i] = *a
	}
	return out
}

// AllAdversariesDead - true и для уровня без противников.
func (w *World) AllAdversariesDead() bool {
	for _, a := range w.adversaries {
		if a.Alive() {
			return false
		}
	}
	return true
}

// Route - маршрут до выхода, если он открыт.
func (w *World) Route() (systems.Route, error) {
	if !w.pathRevealed {
		return nil, nil
	}
	return w.paths.PathToEnd(w.level.Exit())
}

// --- Внутреннее ---

func (w *World) load(level *domain.Level) {
	w.level = level
	w.terrain = systems.NewTerrain(level)
	if w.paths == nil {
		w.paths = systems.NewPathField(w.terrain)
	} else {
		w.paths.Reset(w.terrain)
	}
	w.restore()
}

// restore - общая часть сброса и загрузки.
func (w *World) restore() {
	w.player = w.level.Start()
	w.facing = domain.DirNone
	w.adversaries = w.level.SpawnAdversaries()
	w.pending = nil
	w.slash = nil
	w.slashCooldown = 0
	w.pathRevealed = false

	w.paths.Clear()
	w.paths.Initiate(w.player)
}

func (w *World) resetLevel() {
	w.restore()
	w.addLog(domain.EventLevelReset, "The labyrinth resets.")

	logger.Log.WithFields(logrus.Fields{
		"level": w.level.Name(),
		"tick":  w.tick,
	}).Info("Level reset")

	w.notify()
}

func (w *World) reachExit() {
	w.addLog(domain.EventExitReached, fmt.Sprintf("%s cleared.", w.level.Name()))
	logger.Log.WithFields(logrus.Fields{
		"level": w.level.Name(),
		"tick":  w.tick,
	}).Info("Exit reached")

	if w.supplier != nil {
		w.supplier.NextLevel()
	}
}

// dormantAt - спящий противник на клетке. Через него игрок не проходит,
// а на активного наступить можно (это поимка).
func (w *World) dormantAt(c domain.Coordinate) *domain.Adversary {
	for _, a := range w.adversaries {
		if a.Dormant() && a.Pos == c {
			return a
		}
	}
	return nil
}

func (w *World) liveAdversaryAt(c domain.Coordinate) *domain.Adversary {
	for _, a := range w.adversaries {
		if a.Alive() && a.Pos == c {
			return a
		}
	}
	return nil
}

func (w *World) decaySlash() {
	if w.slashCooldown > 0 {
		w.slashCooldown--
	} else {
		w.slash = nil
	}
}

func (w *World) updatePaths(moved bool) {
	switch {
	case w.paths.Empty():
		w.paths.Initiate(w.player)
	case moved:
		w.paths.Recalculate(w.player)
	}
}

// adversaryPass - ход всех противников по списку на момент начала прохода.
// Потомки добавляются после прохода. false - игрок пойман, уровень сброшен.
func (w *World) adversaryPass() bool {
	arena := worldArena{w}
	difficulty := w.level.Difficulty()

	for _, a := range w.adversaries {
		out := systems.UpdateAdversary(a, arena, w.rng, difficulty)
		if out.Overheated {
			w.addLog(domain.EventOverheat, fmt.Sprintf("A pursuer overheats at %s.", a.Pos))
		}
		if out.CaughtPlayer {
			w.addLog(domain.EventCaught, fmt.Sprintf("A %s caught you.", kindName(a.Kind)))
			w.resetLevel()
			return false
		}
	}

	w.flushSpawns()
	return true
}

func (w *World) flushSpawns() {
	for _, spec := range w.pending {
		if spec.Start == w.player || w.liveAdversaryAt(spec.Start) != nil {
			continue
		}
		w.adversaries = append(w.adversaries, domain.NewAdversary(spec))
		w.addLog(domain.EventSpawn, fmt.Sprintf("A %s splits at %s.", kindName(spec.Kind), spec.Start))
	}
	w.pending = nil
}

func (w *World) notify() {
	snap := w.Snapshot()
	for _, o := range w.observers {
		o.OnUpdate(snap)
	}
	w.logs = nil
}

func (w *World) addLog(ev domain.EventType, text string) {
	w.logs = append(w.logs, domain.NewLogEntry(w.tick, ev, text))
	logger.Log.WithFields(logrus.Fields{
		"level": w.level.Name(),
		"tick":  w.tick,
		"event": ev.String(),
	}).Debug(text)
}

func kindName(k domain.AdversaryKind) string {
	switch k {
	case domain.Pursuer:
		return "pursuer"
	case domain.Wanderer:
		return "wanderer"
	}
	return "thing"
}

// worldArena - взгляд противника на мир.
type worldArena struct{ w *World }

func (a worldArena) Paths() *systems.PathField { return a.w.paths }
func (a worldArena) Player() domain.Coordinate { return a.w.player }
func (a worldArena) Passable(c domain.Coordinate) bool {
	return a.w.terrain.Passable(c)
}
func (a worldArena) Occupied(c domain.Coordinate) bool {
	return a.w.liveAdversaryAt(c) != nil
}
func (a worldArena) Spawn(spec domain.AdversarySpec) {
	a.w.pending = append(a.w.pending, spec)
}
