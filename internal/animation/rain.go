package animation

import (
	"math/rand/v2"
	"time"
)

const (
	rainDrops  = 16
	rainPeriod = 200 * time.Millisecond
)

// Rain is an evenly spread shower falling from the cloud.
type Rain struct {
	drops *DropSystem
}

func NewRain(rng *rand.Rand) *Rain {
	s := NewDropSystem(DefaultBounds, rng)
	s.Declutter = true
	return &Rain{drops: s}
}

// Configure starts the shower already populated so the first frame is not
// empty.
func (r *Rain) Configure(cfg Config) error {
	if err := r.drops.Configure(cfg); err != nil {
		return err
	}
	for i := 0; i < rainDrops; i++ {
		r.drops.SpawnDrop(false)
	}
	return nil
}

func (r *Rain) Tick() { r.drops.Tick() }

func (r *Rain) FramePeriod() time.Duration { return rainPeriod }

// Drops exposes the particle system.
func (r *Rain) Drops() *DropSystem { return r.drops }
