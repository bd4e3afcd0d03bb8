package engine

import (
	"sort"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/systems"
	"labyrinth-server/pkg/api"
	"labyrinth-server/pkg/logger"
)

// Snapshot - неизменяемый снимок мира для наблюдателей.
// Стены разделяются с уровнем по ссылке и только читаются.
type Snapshot struct {
	Level         string
	Tick          int
	Width, Height int
	Walls         domain.WallSet
	Start, Exit   domain.Coordinate

	Player domain.Coordinate
	Facing domain.Direction

	Adversaries   []domain.Adversary
	Interactables map[domain.Coordinate]string

	Slash         *domain.Coordinate
	SlashCooldown int

	// Field - копия поля путей: направление к игроку и расстояние для
	// каждой достижимой клетки.
	Field map[domain.Coordinate]systems.PathEntry

	PathRevealed bool
	Route        systems.Route

	Logs []domain.LogEntry
}

// Snapshot собирает снимок текущего состояния.
func (w *World) Snapshot() Snapshot {
	items := make(map[domain.Coordinate]string, len(w.terrain.Items))
	for c, it := range w.terrain.Items {
		items[c] = it.Kind()
	}

	var slash *domain.Coordinate
	if w.slash != nil {
		pos := *w.slash
		slash = &pos
	}

	route, err := w.Route()
	if err != nil {
		logger.Log.WithError(err).WithField("level", w.level.Name()).Warn("Route unavailable")
		route = nil
	}

	logs := make([]domain.LogEntry, len(w.logs))
	copy(logs, w.logs)

	return Snapshot{
		Level:         w.level.Name(),
		Tick:          w.tick,
		Width:         w.level.Width(),
		Height:        w.level.Height(),
		Walls:         w.level.Walls(),
		Start:         w.level.Start(),
		Exit:          w.level.Exit(),
		Player:        w.player,
		Facing:        w.facing,
		Adversaries:   w.Adversaries(),
		Interactables: items,
		Slash:         slash,
		SlashCooldown: w.slashCooldown,
		Field:         w.paths.Entries(),
		PathRevealed:  w.pathRevealed,
		Route:         route,
		Logs:          logs,
	}
}

// BuildResponse превращает снимок в DTO для клиента.
// Стены уходят только в NEW_LEVEL: в UPDATE они не меняются.
func BuildResponse(sessionID, msgType string, s Snapshot) api.ServerResponse {
	resp := api.ServerResponse{
		Type:      msgType,
		SessionID: sessionID,
		Tick:      s.Tick,
		Level:     s.Level,
		Grid:      api.GridMeta{Width: s.Width, Height: s.Height},
		Player:    api.PlayerView{Pos: toPoint(s.Player), Facing: s.Facing.String()},
		Exit:      toPoint(s.Exit),
	}

	if msgType == api.TypeNewLevel {
		walls := s.Walls.Slice()
		resp.Walls = make([]api.Point, len(walls))
		for i, c := range walls {
			resp.Walls[i] = toPoint(c)
		}
	}

	resp.Adversaries = make([]api.AdversaryView, 0, len(s.Adversaries))
	for _, a := range s.Adversaries {
		resp.Adversaries = append(resp.Adversaries, api.AdversaryView{
			Kind:      a.Kind.String(),
			Pos:       toPoint(a.Pos),
			Facing:    a.Facing.String(),
			Dead:      a.Dead,
			Activated: a.Activated,
			Cooldown:  a.Cooldown,
		})
	}

	for _, c := range sortedKeys(s.Interactables) {
		resp.Interactables = append(resp.Interactables, api.InteractableView{
			Kind: s.Interactables[c],
			Pos:  toPoint(c),
		})
	}

	if s.Slash != nil {
		resp.Slash = &api.SlashView{Pos: toPoint(*s.Slash), Cooldown: s.SlashCooldown}
	}

	for _, step := range s.Route {
		resp.Route = append(resp.Route, api.RouteStepView{Pos: toPoint(step.At), Dir: step.Dir.String()})
	}

	for _, l := range s.Logs {
		resp.Logs = append(resp.Logs, api.LogEntry{Tick: l.Tick, Type: l.Kind, Text: l.Text})
	}

	return resp
}

func toPoint(c domain.Coordinate) api.Point {
	return api.Point{X: c.X, Y: c.Y}
}

func sortedKeys(m map[domain.Coordinate]string) []domain.Coordinate {
	out := make([]domain.Coordinate, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
