package render

import (
	"image/color"
	"sync"

	"golang.org/x/image/font"
)

// Op is one recorded Sink call.
type Op struct {
	Kind          string // "pixel", "glyph" or "rect"
	X, Y          int
	Width, Height int
	Rune          rune
	Color         color.RGBA
}

// Recorder is a Sink that remembers every call and forwards to an optional
// inner sink. It is used by tests and by the debug API.
type Recorder struct {
	Inner Sink

	mu  sync.Mutex
	ops []Op
}

func (r *Recorder) SetPixel(x, y int, c color.RGBA) {
	r.record(Op{Kind: "pixel", X: x, Y: y, Color: c})
	if r.Inner != nil {
		r.Inner.SetPixel(x, y, c)
	}
}

func (r *Recorder) DrawGlyph(x, y int, face font.Face, ch rune, c color.RGBA) {
	r.record(Op{Kind: "glyph", X: x, Y: y, Rune: ch, Color: c})
	if r.Inner != nil {
		r.Inner.DrawGlyph(x, y, face, ch, c)
	}
}

func (r *Recorder) FillRect(x, y, width, height int, c color.RGBA) {
	r.record(Op{Kind: "rect", X: x, Y: y, Width: width, Height: height, Color: c})
	if r.Inner != nil {
		r.Inner.FillRect(x, y, width, height, c)
	}
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// Glyphs returns the runes drawn, in order.
func (r *Recorder) Glyphs() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []rune
	for _, op := range r.ops {
		if op.Kind == "glyph" {
			out = append(out, op.Rune)
		}
	}
	return string(out)
}
