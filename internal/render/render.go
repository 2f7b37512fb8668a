package render

import (
	"context"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Sink is the raster output the widgets draw into.
// Coordinates are matrix pixels; y for DrawGlyph is the glyph baseline.
type Sink interface {
	SetPixel(x, y int, c color.RGBA)
	DrawGlyph(x, y int, face font.Face, r rune, c color.RGBA)
	FillRect(x, y, width, height int, c color.RGBA)
}

// Device is a Sink backed by real (or simulated) output hardware.
type Device interface {
	Sink
	Start(ctx context.Context) error
	Stop() error

	// Flush presents everything drawn since the last flush.
	Flush() error

	// SetBrightness sets the global output brightness in percent.
	SetBrightness(percent int)

	// Snapshot returns a copy of the logical canvas.
	Snapshot() *image.RGBA
}

// NoopDevice discards all output.
type NoopDevice struct{ *Canvas }

func NewNoopDevice() *NoopDevice {
	return &NoopDevice{Canvas: NewCanvas(CanvasWidth, CanvasHeight)}
}

func (n *NoopDevice) Start(ctx context.Context) error { return nil }
func (n *NoopDevice) Stop() error                     { return nil }
func (n *NoopDevice) Flush() error                    { return nil }
func (n *NoopDevice) SetBrightness(percent int)       {}

// Scale applies a brightness percentage to a color.
func Scale(c color.RGBA, percent int) color.RGBA {
	if percent >= 100 {
		return c
	}
	if percent <= 0 {
		return color.RGBA{A: c.A}
	}
	return color.RGBA{
		R: uint8(int(c.R) * percent / 100),
		G: uint8(int(c.G) * percent / 100),
		B: uint8(int(c.B) * percent / 100),
		A: c.A,
	}
}

// Brighten adds amount to every channel, saturating at 255.
func Brighten(c color.RGBA, amount int) color.RGBA {
	add := func(v uint8) uint8 {
		s := int(v) + amount
		if s > 255 {
			return 255
		}
		if s < 0 {
			return 0
		}
		return uint8(s)
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
