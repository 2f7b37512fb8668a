package render

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	"github.com/pkg/errors"
)

// Logger is the subset of the application logger used by sinks.
type Logger interface {
	Infof(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

// FBSink renders to the Linux framebuffer using an offscreen logical canvas.
type FBSink struct {
	*Canvas

	Path   string
	Logger Logger

	fbDev      *fb.Device
	running    atomic.Bool
	brightness atomic.Int32
}

func NewFBSink(path string) *FBSink {
	if path == "" {
		path = "/dev/fb0"
	}
	s := &FBSink{Canvas: NewCanvas(CanvasWidth, CanvasHeight), Path: path}
	s.brightness.Store(100)
	return s
}

func (s *FBSink) Start(ctx context.Context) error {
	dev, err := fb.Open(s.Path)
	if err != nil {
		return errors.Wrapf(err, "open framebuffer %s", s.Path)
	}
	s.fbDev = dev
	if s.Logger != nil {
		bounds := dev.Bounds()
		s.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	s.running.Store(true)
	return nil
}

func (s *FBSink) Stop() error {
	s.running.Store(false)
	if s.fbDev != nil {
		s.fbDev.Close()
		s.fbDev = nil
	}
	return nil
}

func (s *FBSink) SetBrightness(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.brightness.Store(int32(percent))
}

func (s *FBSink) Flush() error {
	if !s.running.Load() || s.fbDev == nil {
		return nil
	}
	blitToFB(s.fbDev, s.Canvas.Snapshot(), int(s.brightness.Load()))
	return nil
}

// Helper: blit canvas to framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA, brightness int) {
	if dev == nil {
		return
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	cw := canvas.Bounds().Dx()
	ch := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * ch) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * cw) / fbWidth
			pixel := Scale(canvas.RGBAAt(sx, sy), brightness)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
