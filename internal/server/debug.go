package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/engine"
	"labyrinth-server/internal/network"
	"labyrinth-server/internal/render"
	"labyrinth-server/internal/systems"
	"labyrinth-server/pkg/logger"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сессий
type DebugHandler struct {
	Service *engine.GameService
	Hub     *network.Broadcaster
}

func NewDebugHandler(s *engine.GameService, hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Service: s, Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/ascii", h.handleASCII)
	mux.HandleFunc("/debug/paths", h.handlePaths)
}

// SessionSummary - строка списка /debug/sessions
type SessionSummary struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Level       string    `json:"level"`
	Tick        int       `json:"tick"`
	Player      string    `json:"player"`
	Alive       int       `json:"alive"`
	Adversaries int       `json:"adversaries"`
	Revealed    bool      `json:"revealed"`
	Connected   bool      `json:"connected"` // есть websocket-подписчик
}

// /debug/sessions - список активных сессий
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.Service.List()
	summary := make([]SessionSummary, 0, len(sessions))

	for _, s := range sessions {
		snap := s.Snapshot()
		alive := 0
		for _, a := range snap.Adversaries {
			if !a.Dead {
				alive++
			}
		}
		summary = append(summary, SessionSummary{
			ID:          s.ID.String(),
			Created:     s.Created,
			Level:       snap.Level,
			Tick:        snap.Tick,
			Player:      snap.Player.String(),
			Alive:       alive,
			Adversaries: len(snap.Adversaries),
			Revealed:    snap.PathRevealed,
			Connected:   h.Hub != nil && h.Hub.HasSubscriber(s.ID.String()),
		})
	}

	writeJSON(w, summary)
}

// /debug/ascii?session=<uuid> - карта сессии текстом
func (h *DebugHandler) handleASCII(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(render.ASCII(session.Snapshot()) + "\n"))
}

// PathCell - одна запись поля путей
type PathCell struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Dir  string `json:"dir"`
	Dist int    `json:"dist"`
}

// /debug/paths?session=<uuid> - дамп поля путей (с проверкой инварианта)
func (h *DebugHandler) handlePaths(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	type dump struct {
		Root  string     `json:"root"`
		Valid bool       `json:"valid"`
		Error string     `json:"error,omitempty"`
		Cells []PathCell `json:"cells"`
	}

	var out dump
	session.Inspect(func(world *engine.World) {
		paths := world.Paths()
		out.Root = paths.Root().String()
		out.Cells = make([]PathCell, 0, paths.Len())
		paths.Each(func(c domain.Coordinate, e systems.PathEntry) {
			out.Cells = append(out.Cells, PathCell{X: c.X, Y: c.Y, Dir: e.Dir.String(), Dist: e.Dist})
		})
		if err := paths.Validate(); err != nil {
			out.Error = err.Error()
		}
	})
	out.Valid = out.Error == ""

	writeJSON(w, out)
}

func (h *DebugHandler) lookup(w http.ResponseWriter, r *http.Request) (*engine.Session, bool) {
	id, err := uuid.Parse(r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return nil, false
	}

	session, err := h.Service.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (локальный debug-клиент)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// nil отдаем пустым массивом, а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode debug response")
	}
}
