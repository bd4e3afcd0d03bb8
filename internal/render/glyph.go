package render

import "fmt"

// Glyph - цветной символ клетки, упакованный в uint32:
//
//	[0:8]  - символ (ASCII)
//	[8:32] - цвет 0xRRGGBB
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1
	maskColor = (1 << bitsColor) - 1
)

// MakeGlyph упаковывает цвет и символ. Старшие биты цвета отбрасываются.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

func (g Glyph) Color() uint32 { return uint32(g>>shiftColor) & maskColor }
func (g Glyph) Char() byte { return byte(g & maskChar) }

// HexColor - цвет в виде "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

func (g Glyph) String() string {
	return fmt.Sprintf("Glyph{char=%q, color=%s}", rune(g.Char()), g.HexColor())
}

// Палитра
var (
	GlyphFloor    = MakeGlyph(0x3F3F46, '.')
	GlyphWall     = MakeGlyph(0xA1A1AA, '#')
	GlyphExit     = MakeGlyph(0x22C55E, 'E')
	GlyphTreasure = MakeGlyph(0xEAB308, 'T')
	GlyphPlayer   = MakeGlyph(0x22D3EE, '@')
	GlyphPursuer  = MakeGlyph(0xEF4444, 'P')
	GlyphDormant  = MakeGlyph(0x7F1D1D, 'p')
	GlyphWanderer = MakeGlyph(0xA855F7, 'W')
	GlyphCorpse   = MakeGlyph(0x52525B, 'x')
	GlyphSlash    = MakeGlyph(0xF97316, '+')
	GlyphUnknown  = MakeGlyph(0xFFFFFF, '?')
)

// Стрелки маршрута по направлению шага
var routeGlyphs = map[string]Glyph{
	"UP":    MakeGlyph(0x0EA5E9, '^'),
	"DOWN":  MakeGlyph(0x0EA5E9, 'v'),
	"LEFT":  MakeGlyph(0x0EA5E9, '<'),
	"RIGHT": MakeGlyph(0x0EA5E9, '>'),
}
