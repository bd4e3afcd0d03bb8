package agent

import (
	"context"
	"errors"
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"labyrinth-server/pkg/logger"
)

// Stepper - источник шагов автопрохождения (engine.Session).
// more == false означает, что последний шаг сделан.
type Stepper interface {
	AutoStep(ctx context.Context) (bool, error)
}

// Solver - автопилот. Раз в delay делает шаг по открытому маршруту,
// пока маршрут не кончится, шаг не вернет ошибку или не вызовут Stop.
//
// Жизненный цикл:
//  1. Start -> запускает горутину с тикером.
//  2. Каждый тик -> Stepper.AutoStep под замком сессии.
//  3. Stop -> отменяет контекст и не ждет горутину: Stop зовут
//     под замком сессии, а горутина может ждать этот же замок.
type Solver struct {
	stepper Stepper
	delay   time.Duration

	mu      deadlock.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewSolver(stepper Stepper, delay time.Duration) *Solver {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return &Solver{stepper: stepper, delay: delay}
}

// Start запускает автопилот. Повторный вызов на работающем ничего не делает.
func (s *Solver) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.running = true

	go s.run(ctx, done)
	logger.Log.WithField("delay", s.delay.String()).Info("Auto-solver started")
	return nil
}

// Stop отменяет текущий прогон. Безопасно звать в любой момент.
func (s *Solver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
}

// Running - прогон запущен и еще не закончился.
func (s *Solver) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Done закрывается, когда текущий (последний) прогон завершился.
// До первого Start возвращает закрытый канал.
func (s *Solver) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

func (s *Solver) run(ctx context.Context, done chan struct{}) {
	defer s.finish(done)

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	steps := 0
	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("steps", steps).Debug("Auto-solver cancelled")
			return
		case <-ticker.C:
			more, err := s.stepper.AutoStep(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Log.WithError(err).WithField("steps", steps).Warn("Auto-solver halted")
				}
				return
			}
			steps++
			if !more {
				logger.Log.WithFields(logrus.Fields{"steps": steps}).Info("Auto-solver reached the exit")
				return
			}
		}
	}
}

// finish снимает флаг, только если это все еще текущий прогон.
func (s *Solver) finish(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == done {
		s.running = false
		s.cancel()
	}
	close(done)
}
