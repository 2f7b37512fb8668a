package animation

import "image/color"

// Pixel is one colored point of a drop.
type Pixel struct {
	X, Y  int
	Color color.RGBA
}

// Drop is a short vertical stack of pixels growing upward from its origin.
type Drop struct {
	X, Y   int
	Pixels []Pixel
}

// Len returns the number of pixels left. A drop with no pixels is
// pending removal.
func (d *Drop) Len() int { return len(d.Pixels) }

func (d *Drop) render(cfg *Config, b Bounds) {
	for _, p := range d.Pixels {
		if b.Contains(p.X, p.Y) {
			cfg.set(p.X, p.Y, p.Color)
		}
	}
}

// move erases the drop, shifts it one row down and draws it again.
// Pixels already on the bottom row fall out of the drop.
func (d *Drop) move(cfg *Config, b Bounds) {
	for _, p := range d.Pixels {
		if b.Contains(p.X, p.Y) {
			cfg.restore(p.X, p.Y)
		}
	}

	kept := d.Pixels[:0]
	for _, p := range d.Pixels {
		if p.Y >= b.YBot {
			continue
		}
		p.Y++
		if b.Contains(p.X, p.Y) {
			cfg.set(p.X, p.Y, p.Color)
		}
		kept = append(kept, p)
	}
	d.Pixels = kept
	d.Y++
}
