package state

import (
	"image"
	"sync"
	"time"

	"github.com/rook-computer/girder/internal/widget"
)

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	}
	return "unknown"
}

// Status is what the driver loop publishes for readers outside it.
type Status struct {
	Phase      Phase
	Brightness int
	Daytime    bool
	Events     uint64
	LastTopic  string
	UpdatedAt  time.Time
	Widgets    []widget.Info
}

// Store is written by the driver loop and read by the web API.
type Store struct {
	mu     sync.RWMutex
	status Status
	frame  *image.RGBA
}

func NewStore() *Store {
	return &Store{status: Status{Phase: BOOTING}}
}

func (store *Store) Snapshot() Status {
	store.mu.RLock()
	defer store.mu.RUnlock()
	snap := store.status
	snap.Widgets = append([]widget.Info(nil), store.status.Widgets...)
	return snap
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.status.Phase = phase
	store.mu.Unlock()
}

// Publish replaces everything but the phase.
func (store *Store) Publish(status Status) {
	store.mu.Lock()
	status.Phase = store.status.Phase
	store.status = status
	store.mu.Unlock()
}

// UpdateFrame stores the latest canvas snapshot. The image must not be
// modified afterwards.
func (store *Store) UpdateFrame(frame *image.RGBA) {
	store.mu.Lock()
	store.frame = frame
	store.mu.Unlock()
}

// Frame returns the latest canvas snapshot or nil before the first frame.
func (store *Store) Frame() *image.RGBA {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.frame
}
