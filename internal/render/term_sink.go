package render

import (
	"context"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// TermSink previews the matrix in a terminal. Each cell shows two
// vertically stacked pixels using an upper half block.
type TermSink struct {
	*Canvas

	Logger Logger
	// OnQuit is called when the user presses q, Esc or Ctrl-C.
	OnQuit func()

	newScreen  func() (tcell.Screen, error)
	screen     tcell.Screen
	brightness atomic.Int32
}

func NewTermSink() *TermSink {
	s := &TermSink{Canvas: NewCanvas(CanvasWidth, CanvasHeight), newScreen: tcell.NewScreen}
	s.brightness.Store(100)
	return s
}

func (s *TermSink) Start(ctx context.Context) error {
	screen, err := s.newScreen()
	if err != nil {
		return errors.Wrap(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal screen")
	}
	screen.HideCursor()
	screen.Clear()
	s.screen = screen
	go s.pollEvents(ctx, screen)
	if s.Logger != nil {
		w, h := screen.Size()
		s.Logger.Infof("term", "terminal preview started, size=%dx%d", w, h)
	}
	return nil
}

// pollEvents owns screen for reading input; it never touches s.screen,
// which Stop clears.
func (s *TermSink) pollEvents(ctx context.Context, screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				if s.OnQuit != nil {
					s.OnQuit()
				}
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *TermSink) Stop() error {
	if s.screen != nil {
		s.screen.Fini()
		s.screen = nil
	}
	return nil
}

func (s *TermSink) SetBrightness(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.brightness.Store(int32(percent))
}

func (s *TermSink) Flush() error {
	if s.screen == nil {
		return nil
	}
	img := s.Canvas.Snapshot()
	b := img.Bounds()
	level := int(s.brightness.Load())
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := Scale(img.RGBAAt(x, y), level)
			bottom := Scale(img.RGBAAt(x, y+1), level)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	s.screen.Show()
	return nil
}
