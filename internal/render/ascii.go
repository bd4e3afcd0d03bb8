package render

import (
	"strings"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/engine"
)

// Frame - кадр в порядке [y][x].
type Frame [][]Glyph

// Draw собирает кадр из снимка. Слои снизу вверх:
// пол и стены, выход, сундуки, маршрут, след удара, противники, игрок.
func Draw(s engine.Snapshot) Frame {
	f := make(Frame, s.Height)
	for y := range f {
		f[y] = make([]Glyph, s.Width)
		for x := range f[y] {
			f[y][x] = GlyphFloor
		}
	}

	s.Walls.Each(func(c domain.Coordinate) {
		f.set(c, GlyphWall)
	})
	f.set(s.Exit, GlyphExit)

	for c, kind := range s.Interactables {
		if kind == "TREASURE" {
			f.set(c, GlyphTreasure)
		} else {
			f.set(c, GlyphUnknown)
		}
	}

	if s.PathRevealed {
		for _, step := range s.Route {
			if g, ok := routeGlyphs[step.Dir.String()]; ok {
				f.set(step.At, g)
			}
		}
	}

	if s.Slash != nil {
		for dy := -domain.SlashRadius; dy <= domain.SlashRadius; dy++ {
			for dx := -domain.SlashRadius; dx <= domain.SlashRadius; dx++ {
				c := domain.Pt(s.Slash.X+dx, s.Slash.Y+dy)
				if !s.Walls.Has(c) {
					f.set(c, GlyphSlash)
				}
			}
		}
	}

	// Мертвые первыми, чтобы живые рисовались поверх
	for _, a := range s.Adversaries {
		if a.Dead {
			f.set(a.Pos, GlyphCorpse)
		}
	}
	for _, a := range s.Adversaries {
		if !a.Dead {
			f.set(a.Pos, adversaryGlyph(a))
		}
	}

	f.set(s.Player, GlyphPlayer)
	return f
}

// ASCII - кадр текстом, строки через '\n'.
func ASCII(s engine.Snapshot) string {
	return Draw(s).String()
}

func (f Frame) String() string {
	var sb strings.Builder
	for y, row := range f {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, g := range row {
			sb.WriteByte(g.Char())
		}
	}
	return sb.String()
}

func (f Frame) set(c domain.Coordinate, g Glyph) {
	if c.Y < 0 || c.Y >= len(f) || c.X < 0 || c.X >= len(f[c.Y]) {
		return
	}
	f[c.Y][c.X] = g
}

func adversaryGlyph(a domain.Adversary) Glyph {
	switch {
	case a.Kind == domain.Wanderer:
		return GlyphWanderer
	case a.Dormant():
		return GlyphDormant
	default:
		return GlyphPursuer
	}
}
