package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"labyrinth-server/internal/engine"
	"labyrinth-server/internal/network"
	"labyrinth-server/internal/version"
	"labyrinth-server/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine *engine.GameService
	Hub    *network.Broadcaster
	Addr   string
}

func New(engine *engine.GameService, hub *network.Broadcaster, addr string) *Server {
	return &Server{
		Engine: engine,
		Hub:    hub,
		Addr:   addr,
	}
}

// Handler собирает все роуты сервера.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Engine, s.Hub)
	debugHandler.RegisterRoutes(mux)

	// Profiling
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Run слушает Addr, пока не отменят ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	logger.Log.WithField("addr", s.Addr).Info("Labyrinth server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket: одна сессия на соединение
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client, err := NewClient(s.Engine, s.Hub, conn)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to start session")
		_ = conn.Close()
		return
	}

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

// Health - тело ответа /health
type Health struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Clients  int    `json:"clients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := Health{Status: "ok", Sessions: len(s.Engine.List())}
	if s.Hub != nil {
		health.Clients = s.Hub.SubscriberCount()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode health")
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(version.Info()); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode version")
	}
}
