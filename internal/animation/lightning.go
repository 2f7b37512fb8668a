package animation

import (
	"math/rand/v2"
	"time"
)

const (
	lightningDrops  = 16
	lightningPeriod = 50 * time.Millisecond

	// drops keep the rain cadence while the flash runs at frame rate
	lightningDropEvery = int(rainPeriod / lightningPeriod)
	flashCycle         = 15
)

// Lightning is rain with a bolt flashing twice every flashCycle frames.
type Lightning struct {
	drops    *DropSystem
	cfg      Config
	pristine []byte
	frame    int
}

func NewLightning(rng *rand.Rand) *Lightning {
	return &Lightning{drops: NewDropSystem(DefaultBounds, rng)}
}

func (l *Lightning) Configure(cfg Config) error {
	l.frame = 0
	if err := l.drops.Configure(cfg); err != nil {
		return err
	}
	l.cfg = cfg
	l.pristine = append(l.pristine[:0], cfg.Background...)
	for i := 0; i < lightningDrops; i++ {
		l.drops.SpawnDrop(false)
	}
	return nil
}

func (l *Lightning) Tick() {
	l.frame++
	if l.frame%lightningDropEvery == 0 {
		l.drops.Tick()
	}
	switch l.frame % flashCycle {
	case 0, 2:
		l.flash(true)
	case 1, 3:
		l.flash(false)
	}
}

// flash swaps the bolt into or out of both buffers.
func (l *Lightning) flash(on bool) {
	if l.cfg.Overlay == nil {
		return
	}
	src := l.pristine
	if on {
		src = l.cfg.Overlay
	}
	for i := 0; i+2 < len(l.cfg.Overlay); i += 3 {
		if l.cfg.Overlay[i] == 0 && l.cfg.Overlay[i+1] == 0 && l.cfg.Overlay[i+2] == 0 {
			continue
		}
		copy(l.cfg.Foreground[i:i+3], src[i:i+3])
		copy(l.cfg.Background[i:i+3], src[i:i+3])
	}
}

func (l *Lightning) FramePeriod() time.Duration { return lightningPeriod }

func (l *Lightning) Drops() *DropSystem { return l.drops }

// Frame returns the number of frames since Configure.
func (l *Lightning) Frame() int { return l.frame }
