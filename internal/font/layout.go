package font

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/rook-computer/girder/internal/render"
)

// Logger receives layout warnings. A nil Logger is allowed.
type Logger interface {
	Warnf(component, format string, args ...interface{})
}

// RenderLength returns the visible width of text in pixels: the sum of
// glyph widths without the spacing after the last glyph.
func RenderLength(text string, f *Font) int {
	if text == "" {
		return 0
	}
	length := 0
	for _, r := range text {
		length += Width(r, f)
	}
	return length - 1
}

// Draw renders text with its top-left corner at (x, y). With variableWidth
// each glyph is placed using the metrics tables; otherwise the string is
// drawn at the face's own pitch.
func Draw(sink render.Sink, x, y int, c color.RGBA, text string, f *Font, variableWidth bool, log Logger) {
	if sink == nil {
		return
	}
	if f == nil {
		f = Default()
	}
	if strings.ContainsRune(text, '.') && utf8.RuneCountInString(text) != 3 && log != nil {
		log.Warnf("font", "unable to autoparse %q for custom rendering, using default", text)
	}
	if !variableWidth {
		DrawFixed(sink, x, y, c, text, f, f.Kerning)
		return
	}

	baseline := y + f.Height
	if isDecimal(text) {
		drawDecimal(sink, x, baseline, c, text, f)
		return
	}
	cx := x
	for _, r := range text {
		drawGlyph(sink, r, cx, baseline, f, c)
		cx += Advance(r, f)
	}
}

// DrawFixed draws text at the face's glyph advance plus kerning.
func DrawFixed(sink render.Sink, x, y int, c color.RGBA, text string, f *Font, kerning int) {
	if sink == nil || f == nil {
		return
	}
	baseline := y + f.Height
	cx := x
	for _, r := range text {
		sink.DrawGlyph(cx, baseline, f.Face, r, c)
		cx += pitch(r, f) + kerning
	}
}

func pitch(r rune, f *Font) int {
	if f.Face != nil {
		if adv, ok := f.Face.GlyphAdvance(r); ok {
			return adv.Round()
		}
	}
	return f.Width + 1
}

// isDecimal reports whether text has the form "d.d".
func isDecimal(text string) bool {
	return len(text) == 3 && text[1] == '.' && isDigit(text[0]) && isDigit(text[2])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// drawDecimal places both digits separately with a two pixel point
// between them. Narrow leading digits are nudged right by one column.
func drawDecimal(sink render.Sink, x, baseline int, c color.RGBA, text string, f *Font) {
	lead, tail := rune(text[0]), rune(text[2])
	cx := x
	if lead == '0' || lead == '1' {
		cx++
	}
	drawGlyph(sink, lead, cx, baseline, f, c)
	cx += Advance(lead, f)

	sink.SetPixel(cx, baseline-1, c)
	sink.SetPixel(cx, baseline-2, c)
	cx += Advance('.', f)

	drawGlyph(sink, tail, cx, baseline, f, c)
}

// drawGlyph renders one glyph with its cell origin at x. Punctuation with
// hand-drawn pixel sets bypasses the bitmap face.
func drawGlyph(sink render.Sink, r rune, x, baseline int, f *Font, c color.RGBA) {
	if pixels, ok := customGlyph(r, f); ok {
		for _, p := range pixels {
			sink.SetPixel(x+p.dx, baseline-p.dy, c)
		}
		return
	}
	sink.DrawGlyph(x-Offset(r, f), baseline, f.Face, r, c)
}

// dot is a pixel relative to the glyph origin, dy counted up from the baseline.
type dot struct{ dx, dy int }

var (
	periodDots = []dot{{0, 1}}
	colonDots  = []dot{{1, 2}, {1, 3}, {1, 5}, {1, 6}}
	slashDots  = []dot{{1, 1}, {1, 2}, {2, 3}, {2, 4}, {2, 5}, {3, 6}, {3, 7}}
	degreeDots = []dot{{0, 6}, {0, 7}, {1, 6}, {1, 7}}

	smallSlashDots = []dot{{1, 1}, {1, 2}, {2, 3}, {2, 4}, {3, 5}, {3, 6}}
)

func customGlyph(r rune, f *Font) ([]dot, bool) {
	switch f.metrics() {
	case NameDefault:
		switch r {
		case '.':
			return periodDots, true
		case ':':
			return colonDots, true
		case '/':
			return slashDots, true
		case Degree:
			return degreeDots, true
		}
	case NameSmall:
		switch r {
		case '.':
			return periodDots, true
		case ':':
			return colonDots, true
		case '/':
			return smallSlashDots, true
		}
	}
	return nil, false
}
