// Package animation animates precipitation over weather icons. Drops are
// drawn into a foreground RGB buffer and erased from a background copy of
// the same image.
package animation

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/rook-computer/girder/internal/weather"
)

// Config binds an animation to the icon buffers of one weather widget.
// Foreground is written on every frame. Background is the untouched icon
// and is only read, except by animations that flash an Overlay into it.
type Config struct {
	Foreground []byte
	Background []byte
	ImageWidth int
	Weather    weather.Type

	// Overlay is an optional RGB image of the same size flashed over the
	// icon. Black pixels are transparent.
	Overlay []byte
}

func (c *Config) height() int {
	if c.ImageWidth <= 0 {
		return 0
	}
	return len(c.Foreground) / 3 / c.ImageWidth
}

func (c *Config) index(x, y int) int { return 3 * (y*c.ImageWidth + x) }

func (c *Config) set(x, y int, col color.RGBA) {
	i := c.index(x, y)
	c.Foreground[i] = col.R
	c.Foreground[i+1] = col.G
	c.Foreground[i+2] = col.B
}

func (c *Config) restore(x, y int) {
	i := c.index(x, y)
	copy(c.Foreground[i:i+3], c.Background[i:i+3])
}

// validate checks the buffers are usable for bounds b.
func (c *Config) validate(b Bounds) error {
	if c.ImageWidth <= 0 {
		return errors.Errorf("invalid image width %d", c.ImageWidth)
	}
	if len(c.Foreground) == 0 || len(c.Foreground)%(3*c.ImageWidth) != 0 {
		return errors.Errorf("foreground buffer of %d bytes does not match width %d", len(c.Foreground), c.ImageWidth)
	}
	if len(c.Background) != len(c.Foreground) {
		return errors.Errorf("background buffer is %d bytes, want %d", len(c.Background), len(c.Foreground))
	}
	if c.Overlay != nil && len(c.Overlay) != len(c.Foreground) {
		return errors.Errorf("overlay buffer is %d bytes, want %d", len(c.Overlay), len(c.Foreground))
	}
	if b.XTop < 0 || b.YTop < 0 || b.XBot >= c.ImageWidth || b.YBot >= c.height() || b.XTop > b.XBot || b.YTop > b.YBot {
		return errors.Errorf("bounds %+v outside %dx%d image", b, c.ImageWidth, c.height())
	}
	return nil
}

// Animation is one weather effect.
type Animation interface {
	// Configure resets the animation onto new buffers.
	Configure(cfg Config) error
	// Tick advances one frame.
	Tick()
	// FramePeriod is the time between ticks.
	FramePeriod() time.Duration
}

type factory func(rng *rand.Rand) Animation

var registry = map[weather.Type]factory{
	weather.Rainy:      func(rng *rand.Rand) Animation { return NewRain(rng) },
	weather.RainySnowy: func(rng *rand.Rand) Animation { return NewRain(rng) },
	weather.Snowy:      func(rng *rand.Rand) Animation { return NewSnow(rng) },
	weather.Stormy:     func(rng *rand.Rand) Animation { return NewLightning(rng) },
}

// ForWeather returns a new animation for t, or nil if t is static.
// A nil rng seeds from the runtime.
func ForWeather(t weather.Type, rng *rand.Rand) Animation {
	f, ok := registry[t]
	if !ok {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return f(rng)
}

// Animated reports whether t has an animation.
func Animated(t weather.Type) bool {
	_, ok := registry[t]
	return ok
}
