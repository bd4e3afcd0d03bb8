package engine

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"labyrinth-server/internal/domain"
	"labyrinth-server/pkg/logger"
	"labyrinth-server/pkg/maze"
)

// Campaign - поставщик уровней: строит "LEVEL n" и отдает их миру.
type Campaign struct {
	settings Settings
	rng      *rand.Rand
	number   int
	world    *World
}

func NewCampaign(settings Settings, rng *rand.Rand) *Campaign {
	return &Campaign{settings: settings, rng: rng}
}

// Start строит первый уровень и создает мир.
func (c *Campaign) Start() (*World, error) {
	c.number = 1
	level, err := c.build()
	if err != nil {
		return nil, err
	}

	c.world = NewWorld(level, c.rng)
	c.world.SetSupplier(c)
	return c.world, nil
}

// Number - номер текущего уровня.
func (c *Campaign) Number() int {
	return c.number
}

// NextLevel вызывается миром, когда игрок дошел до выхода.
func (c *Campaign) NextLevel() {
	c.number++
	c.load()
}

// Regenerate пересоздает текущий уровень с тем же номером.
func (c *Campaign) Regenerate() {
	c.load()
}

func (c *Campaign) load() {
	if c.world == nil {
		return
	}

	level, err := c.build()
	if err != nil {
		// Настройки проверены при старте, сюда попадать не должны
		logger.Log.WithError(err).WithField("level", c.number).Error("Failed to build level")
		return
	}
	c.world.NewLevel(level)
}

func (c *Campaign) build() (*domain.Level, error) {
	level, err := maze.NewLevel(fmt.Sprintf("LEVEL %d", c.number), c.rng).
		WithSize(c.settings.Width, c.settings.Height).
		WithDifficulty(c.settings.Difficulty).
		SpawnWanderers(c.settings.Wanderers).
		PlaceTreasures(c.settings.Treasures).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build level %d: %w", c.number, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"level":       level.Name(),
		"adversaries": level.AdversaryCount(),
		"walls":       level.Walls().Len(),
	}).Debug("Level generated")
	return level, nil
}
