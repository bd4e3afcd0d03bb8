package render

import (
	"fmt"
	"io"

	"labyrinth-server/internal/engine"
)

// Console - наблюдатель, печатающий кадры и журнал в поток.
// Используется простым терминальным режимом и отладкой.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) OnNewLevel(s engine.Snapshot) {
	fmt.Fprintf(c.out, "=== %s (%dx%d) ===\n", s.Level, s.Width, s.Height)
}

func (c *Console) OnUpdate(s engine.Snapshot) {
	fmt.Fprintf(c.out, "%s\n", ASCII(s))
	for _, l := range s.Logs {
		fmt.Fprintf(c.out, "[%d] %s: %s\n", l.Tick, l.Kind, l.Text)
	}
	fmt.Fprintf(c.out, "tick %d  slash %d\n\n", s.Tick, s.SlashCooldown)
}
