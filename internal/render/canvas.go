package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas is an in-memory Sink over an RGBA image.
type Canvas struct {
	mu  sync.Mutex
	img *image.RGBA
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: Black}, image.Point{}, draw.Src)
	return c
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

func (c *Canvas) FillRect(x, y, width, height int, col color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rect := image.Rect(x, y, x+width, y+height).Intersect(c.img.Rect)
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// DrawGlyph renders a single rune with its baseline at y.
func (c *Canvas) DrawGlyph(x, y int, face font.Face, r rune, col color.RGBA) {
	if face == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(string(r))
}

// RGBAAt returns the pixel at (x, y).
func (c *Canvas) RGBAAt(x, y int) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img.RGBAAt(x, y)
}

func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := image.NewRGBA(c.img.Rect)
	copy(out.Pix, c.img.Pix)
	return out
}
