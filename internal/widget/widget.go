// Package widget implements the rectangular dashboard elements drawn on
// the matrix: an optional icon plus a line of text, with timed brightness
// boosts and timed visibility flips.
package widget

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
)

// Size selects the nominal widget dimensions.
type Size int

const (
	SizeSmall Size = iota
	SizeLarge
	SizeLong
)

const (
	smallWidth  = 28
	largeWidth  = 32
	largeHeight = 32
	longWidth   = 62
	rowHeight   = 8
)

// Align positions text horizontally inside the text area.
type Align int

const (
	AlignRight Align = iota
	AlignCenter
	AlignLeft
)

func (a Align) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	}
	return fmt.Sprintf("align(%d)", int(a))
}

// Part selects which half of a widget a brightness operation touches.
type Part int

const (
	PartIcon Part = iota
	PartText
	PartBoth
)

const (
	// MaxTextLen is the longest text a widget stores.
	MaxTextLen = 16

	// BoostAmount is added to every color channel while a widget is boosted.
	BoostAmount = 100

	// RefreshDelay is how long a text update stays boosted.
	RefreshDelay = 5 * time.Second

	// RefreshActiveDelay is the default visibility flip delay.
	RefreshActiveDelay = 10 * time.Second

	iconTextGap = 2
)

// TextRenderFunc replaces the default text drawing for a widget.
type TextRenderFunc func(sink render.Sink, x, y int, c color.RGBA, text string, f *font.Font, variableWidth bool)

type iconState struct {
	x, y          int
	width, height int
	rgb           []byte
	key           string
	brightness    int
	boost         int
}

func (i *iconState) ready() bool {
	return i.rgb != nil && len(i.rgb) == 3*i.width*i.height
}

type textState struct {
	configured    bool
	x, y          int
	align         Align
	color         color.RGBA
	alertColor    color.RGBA
	alertLevel    float64
	font          *font.Font
	value         string
	visible       int
	variableWidth bool
	brightness    int
	boost         int
	render        TextRenderFunc
}

// Widget is one dashboard element. Widgets are owned by the driver loop
// and are not safe for concurrent use.
type Widget struct {
	Name string

	x, y          int
	width, height int
	active        bool
	debug         bool

	icon iconState
	text textState

	resetBrightnessAt time.Time
	resetActiveAt     time.Time

	renders int
}

// New returns an active widget with no geometry.
func New(name string) *Widget {
	return &Widget{
		Name:   name,
		active: true,
		text:   textState{variableWidth: true},
	}
}

func (w *Widget) component() string { return "widget/" + w.Name }

// SetSize applies the nominal dimensions of s.
func (w *Widget) SetSize(s Size) error {
	switch s {
	case SizeSmall:
		w.width, w.height = smallWidth, rowHeight
	case SizeLarge:
		w.width, w.height = largeWidth, largeHeight
	case SizeLong:
		w.width, w.height = longWidth, rowHeight
	default:
		return fmt.Errorf("%s: unknown widget size %d", w.Name, int(s))
	}
	return nil
}

// SetOrigin places the widget's top-left corner on the canvas.
func (w *Widget) SetOrigin(x, y int) {
	w.x, w.y = x, y
}

// SetBounds overrides the widget dimensions.
func (w *Widget) SetBounds(width, height int) {
	w.width, w.height = width, height
}

func (w *Widget) Bounds() image.Rectangle {
	return image.Rect(w.x, w.y, w.x+w.width, w.y+w.height)
}

func (w *Widget) SetActive(active bool) { w.active = active }
func (w *Widget) Active() bool          { return w.active }
func (w *Widget) SetDebug(debug bool)   { w.debug = debug }
func (w *Widget) Debug() bool           { return w.debug }

// Text returns the stored text.
func (w *Widget) Text() string { return w.text.value }

// IconKey returns the key of the last icon set through UpdateIcon.
func (w *Widget) IconKey() string { return w.icon.key }

// Renders counts the render passes that reached the sink.
func (w *Widget) Renders() int { return w.renders }

// Boosted reports whether a timed brightness boost is pending.
func (w *Widget) Boosted() bool { return !w.resetBrightnessAt.IsZero() }

// Base returns w. It lets the manager reach the shared state of derived
// widgets.
func (w *Widget) Base() *Widget { return w }

// CheckUpdate is the periodic hook for derived widgets. Plain widgets
// have nothing to do.
func (w *Widget) CheckUpdate(ctx *RenderContext) {}

// Clear blanks the widget rectangle. Inactive widgets are left alone
// unless force is set.
func (w *Widget) Clear(ctx *RenderContext, force bool) {
	if !w.active && !force {
		return
	}
	ctx.Sink.FillRect(w.x, w.y, w.width, w.height+1, render.Black)
}

// Render redraws the whole widget. Inactive widgets draw nothing.
func (w *Widget) Render(ctx *RenderContext) {
	if !w.active {
		return
	}
	w.renders++
	w.Clear(ctx, false)
	w.renderIcon(ctx)
	w.renderText(ctx)

	if w.debug {
		right, bottom := w.x+w.width-1, w.y+w.height-1
		ctx.Sink.SetPixel(w.x, w.y, color.RGBA{R: 255, A: 255})
		ctx.Sink.SetPixel(right, w.y, color.RGBA{G: 255, A: 255})
		ctx.Sink.SetPixel(w.x, bottom, color.RGBA{B: 255, A: 255})
		ctx.Sink.SetPixel(right, bottom, render.White)
	}
}

// SetResetActive flips visibility after d. Only one flip is pending at a
// time; a later call replaces the earlier deadline.
func (w *Widget) SetResetActive(ctx *RenderContext, d time.Duration) {
	w.resetActiveAt = ctx.Now.Add(d)
}

// CheckResetActive performs a pending visibility flip once its deadline
// has passed. A widget that became inactive leaves its area untouched so
// a widget sharing the same rectangle can own it.
func (w *Widget) CheckResetActive(ctx *RenderContext) {
	if w.resetActiveAt.IsZero() || ctx.Now.Before(w.resetActiveAt) {
		return
	}
	w.resetActiveAt = time.Time{}
	w.active = !w.active
	ctx.log().Debugf(w.component(), "active flipped to %t", w.active)
	w.Render(ctx)
}

// CancelResetActive drops a pending visibility flip.
func (w *Widget) CancelResetActive() { w.resetActiveAt = time.Time{} }
