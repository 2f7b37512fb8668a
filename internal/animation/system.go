package animation

import (
	"image/color"
	"math/rand/v2"

	"github.com/pkg/errors"
)

const (
	minDropSize = 2
	maxDropSize = 3

	// defaultMaxAttempts caps the column resampling when spawning.
	defaultMaxAttempts = 50
)

// DropSystem keeps a constant population of falling drops inside Bounds.
type DropSystem struct {
	Bounds Bounds

	// Declutter spreads new drops away from recently used columns.
	// It is a best effort: after MaxAttempts the collision is accepted.
	Declutter   bool
	MaxAttempts int

	rng     *rand.Rand
	cfg     Config
	palette []color.RGBA
	drops   []*Drop
	hold    []int
	ready   bool
}

func NewDropSystem(b Bounds, rng *rand.Rand) *DropSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &DropSystem{Bounds: b, MaxAttempts: defaultMaxAttempts, rng: rng}
}

// Configure binds the system to cfg and removes every drop.
func (s *DropSystem) Configure(cfg Config) error {
	s.ready = false
	s.drops = s.drops[:0]
	if err := cfg.validate(s.Bounds); err != nil {
		return errors.Wrap(err, "configure drops")
	}
	s.cfg = cfg
	s.palette = PaletteFor(cfg.Weather)
	s.hold = make([]int, s.Bounds.Width())
	s.ready = true
	return nil
}

// Ready reports whether Configure succeeded.
func (s *DropSystem) Ready() bool { return s.ready }

func (s *DropSystem) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

func (s *DropSystem) column() int {
	b := s.Bounds
	x := s.between(b.XTop, b.XBot)
	if !s.Declutter {
		return x
	}
	for attempts := 0; s.hold[x-b.XTop] > 0 && attempts < s.MaxAttempts; attempts++ {
		x = s.between(b.XTop, b.XBot)
	}
	return x
}

// SpawnDrop adds a drop. In-cloud drops start in the band above the
// bounds; the others start anywhere inside them.
func (s *DropSystem) SpawnDrop(inCloud bool) {
	if !s.ready {
		return
	}
	b := s.Bounds
	x := s.column()
	size := s.between(minDropSize, maxDropSize)
	var y int
	if inCloud {
		y = s.between(b.cloudTop(), b.YTop)
	} else {
		y = s.between(b.YTop, b.YBot)
	}

	if s.Declutter {
		col := x - b.XTop
		for c := col - 1; c <= col+1; c++ {
			if c >= 0 && c < len(s.hold) {
				s.hold[c] = size + 2
			}
		}
	}

	d := &Drop{X: x, Y: y, Pixels: make([]Pixel, size)}
	for i := range d.Pixels {
		d.Pixels[i] = Pixel{X: x, Y: y - i, Color: s.palette[s.rng.IntN(len(s.palette))]}
	}
	d.render(&s.cfg, b)
	s.drops = append(s.drops, d)
}

// Tick moves every drop one row and replaces the ones that fell out.
func (s *DropSystem) Tick() {
	if !s.ready {
		return
	}
	kept := s.drops[:0]
	removed := 0
	for _, d := range s.drops {
		d.move(&s.cfg, s.Bounds)
		if d.Len() == 0 {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	s.drops = kept
	for i := 0; i < removed; i++ {
		s.SpawnDrop(true)
	}
	for i := range s.hold {
		if s.hold[i] > 0 {
			s.hold[i]--
		}
	}
}

// Len returns the number of live drops.
func (s *DropSystem) Len() int { return len(s.drops) }

// Drops returns a copy of the live drops.
func (s *DropSystem) Drops() []Drop {
	out := make([]Drop, len(s.drops))
	for i, d := range s.drops {
		out[i] = Drop{X: d.X, Y: d.Y, Pixels: append([]Pixel(nil), d.Pixels...)}
	}
	return out
}
