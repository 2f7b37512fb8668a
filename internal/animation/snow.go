package animation

import (
	"math/rand/v2"
	"time"
)

const (
	snowDrops  = 12
	snowPeriod = 1200 * time.Millisecond
)

// Snow is a slow fall of grey flakes. Flakes start inside the cloud.
type Snow struct {
	drops *DropSystem
}

func NewSnow(rng *rand.Rand) *Snow {
	return &Snow{drops: NewDropSystem(DefaultBounds, rng)}
}

func (s *Snow) Configure(cfg Config) error {
	if err := s.drops.Configure(cfg); err != nil {
		return err
	}
	for i := 0; i < snowDrops; i++ {
		s.drops.SpawnDrop(true)
	}
	return nil
}

func (s *Snow) Tick() { s.drops.Tick() }

func (s *Snow) FramePeriod() time.Duration { return snowPeriod }

func (s *Snow) Drops() *DropSystem { return s.drops }
