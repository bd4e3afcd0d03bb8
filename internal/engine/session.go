package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/engine/handlers"
	"labyrinth-server/internal/engine/handlers/actions"
	"labyrinth-server/pkg/logger"
)

// Session - один игрок: мир, кампания и замок.
// Все обращения к миру идут под mu, поэтому команды игрока
// и шаги автопилота никогда не пересекаются.
type Session struct {
	ID      uuid.UUID
	Created time.Time

	mu       deadlock.Mutex
	world    *World
	campaign *Campaign
	pilot    handlers.AutoPilot

	handlers map[domain.ActionType]handlers.HandlerFunc
}

// NewSession создает сессию и первый уровень.
func NewSession(settings Settings, rng *rand.Rand) (*Session, error) {
	campaign := NewCampaign(settings, rng)
	world, err := campaign.Start()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	s := &Session{
		ID:       uuid.New(),
		Created:  time.Now(),
		world:    world,
		campaign: campaign,
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}
	s.registerHandlers()
	return s, nil
}

func (s *Session) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionSlash] = handlers.WithEmptyPayload(actions.HandleSlash)
	s.handlers[domain.ActionInteract] = handlers.WithEmptyPayload(actions.HandleInteract)
	s.handlers[domain.ActionRegenerate] = handlers.WithEmptyPayload(actions.HandleRegenerate)
	s.handlers[domain.ActionAutoSolve] = handlers.WithEmptyPayload(actions.HandleAutoSolve)
	s.handlers[domain.ActionStop] = handlers.WithEmptyPayload(actions.HandleStop)
}

// AttachPilot подключает автопилот (создается снаружи, ему нужна сама сессия).
func (s *Session) AttachPilot(p handlers.AutoPilot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pilot = p
}

// Register добавляет наблюдателя мира.
func (s *Session) Register(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world.Register(o)
}

// Execute выполняет команду под замком сессии.
// Ошибки ввода логируются и возвращаются, мир при этом не меняется.
func (s *Session) Execute(cmd domain.InternalCommand) (handlers.Result, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"session": s.ID.String(),
		"action":  cmd.Action.String(),
	})

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		log.Warn("Unknown action")
		return handlers.EmptyResult(), fmt.Errorf("unknown action %s", cmd.Action)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := handlers.Context{
		Game:   s.world,
		Levels: s.campaign,
		Pilot:  s.pilot,
	}

	res, err := handler(ctx, cmd.Payload)
	if err != nil {
		log.WithError(err).Warn("Command rejected")
		return res, err
	}

	if res.Msg != "" {
		s.world.Post(res.MsgType, res.Msg)
		s.world.Notify()
	}
	log.WithField("tick", s.world.Tick()).Debug("Command executed")
	return res, nil
}

// ExecuteRaw разбирает имя действия и выполняет команду.
func (s *Session) ExecuteRaw(action string, payload json.RawMessage) (handlers.Result, error) {
	return s.Execute(domain.InternalCommand{
		Action:  domain.ParseAction(action),
		Payload: payload,
	})
}

// AutoStep - один шаг автопилота под замком сессии.
// Отмененный контекст не дает сделать шаг, уже ожидавший замка.
func (s *Session) AutoStep(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.world.AutoStep()
}

// Snapshot - снимок мира под замком.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Snapshot()
}

// Inspect дает прочитать мир под замком (отладка, тесты).
func (s *Session) Inspect(fn func(w *World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

// LevelNumber - номер уровня кампании.
func (s *Session) LevelNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.campaign.Number()
}

// Close останавливает автопилот.
func (s *Session) Close() {
	s.mu.Lock()
	p := s.pilot
	s.mu.Unlock()

	if p != nil && p.Running() {
		p.Stop()
	}
}
