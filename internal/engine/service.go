package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"labyrinth-server/pkg/logger"
)

// ErrSessionNotFound - сессии с таким ID нет.
var ErrSessionNotFound = errors.New("session not found")

// GameService - реестр сессий. Каждое подключение играет в свой лабиринт.
type GameService struct {
	settings Settings

	mu       deadlock.RWMutex
	sessions map[uuid.UUID]*Session
	created  int64
}

func NewService(settings Settings) *GameService {
	return &GameService{
		settings: settings,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Settings возвращает настройки, с которыми создаются сессии.
func (s *GameService) Settings() Settings {
	return s.settings
}

// Create создает сессию. При заданном Seed сессия N детерминирована (Seed + N).
func (s *GameService) Create() (*Session, error) {
	s.mu.Lock()
	s.created++
	n := s.created
	s.mu.Unlock()

	seed := s.settings.Seed + n
	if s.settings.Seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := NewSession(s.settings, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	total := len(s.sessions)
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"session": session.ID.String(),
		"seed":    seed,
		"active":  total,
	}).Info("Session created")
	return session, nil
}

// Get ищет сессию по ID.
func (s *GameService) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Remove закрывает и удаляет сессию. Повторный вызов безопасен.
func (s *GameService) Remove(id uuid.UUID) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	total := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return
	}
	session.Close()

	logger.Log.WithFields(logrus.Fields{
		"session": id.String(),
		"active":  total,
	}).Info("Session removed")
}

// List возвращает сессии в порядке создания.
func (s *GameService) List() []*Session {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

// Shutdown закрывает все сессии.
func (s *GameService) Shutdown() {
	for _, session := range s.List() {
		s.Remove(session.ID)
	}
}
