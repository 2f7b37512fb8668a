package widget

import (
	"fmt"
	"image/color"

	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
)

const noReading = "--"

// AutoTextConfig configures the text area from the widget size. Only small
// and large widgets have a default text layout.
func (w *Widget) AutoTextConfig(align Align, c color.RGBA) error {
	switch w.width {
	case smallWidth, largeWidth:
		return w.SetCustomTextConfig(w.width, 0, c, align, nil)
	}
	return fmt.Errorf("%s: no default text layout for width %d", w.Name, w.width)
}

// SetCustomTextConfig places the text area explicitly. For right aligned
// text x is the right edge, for centered text it is the area width.
func (w *Widget) SetCustomTextConfig(x, y int, c color.RGBA, align Align, f *font.Font) error {
	switch align {
	case AlignRight, AlignCenter, AlignLeft:
	default:
		return fmt.Errorf("%s: unknown alignment %v", w.Name, align)
	}
	if f == nil {
		f = font.Default()
	}
	w.text.x, w.text.y = x, y
	w.text.color = c
	w.text.align = align
	w.text.font = f
	w.text.configured = true
	return nil
}

// SetCustomTextRender installs a replacement for the default text drawing.
func (w *Widget) SetCustomTextRender(fn TextRenderFunc) { w.text.render = fn }

// SetTextColor changes the normal text color.
func (w *Widget) SetTextColor(c color.RGBA) { w.text.color = c }

// SetVariableWidth selects per-glyph metrics (the default) or a fixed
// cell pitch.
func (w *Widget) SetVariableWidth(variable bool) { w.text.variableWidth = variable }

// SetAlertLevel draws the text in c whenever its numeric value exceeds level.
// A level of zero disables the alert.
func (w *Widget) SetAlertLevel(level float64, c color.RGBA) {
	w.text.alertLevel = level
	w.text.alertColor = c
}

// SetVisibleSize limits how many characters are drawn. Sizes above
// MaxTextLen are clamped.
func (w *Widget) SetVisibleSize(n int) error {
	if n > MaxTextLen {
		w.text.visible = MaxTextLen
		return fmt.Errorf("%s: visible size %d exceeds %d", w.Name, n, MaxTextLen)
	}
	w.text.visible = n
	return nil
}

// UpdateText stores text and redraws. Unchanged text is ignored. When
// brighten is set the text is boosted for RefreshDelay.
func (w *Widget) UpdateText(ctx *RenderContext, text string, brighten bool) {
	text = w.normalizeText(ctx, text)
	if text == w.text.value {
		return
	}
	ctx.log().Debugf(w.component(), "text %q -> %q", w.text.value, text)
	w.text.value = text
	if brighten {
		w.Boost(ctx, BoostAmount, PartText, RefreshDelay)
	}
	w.Render(ctx)
}

// UpdateTextWith converts payload with fn before updating.
func (w *Widget) UpdateTextWith(ctx *RenderContext, payload []byte, fn Transform, brighten bool) {
	w.UpdateText(ctx, fn(payload), brighten)
}

func (w *Widget) normalizeText(ctx *RenderContext, text string) string {
	if text == "0.0" {
		return noReading
	}
	runes := []rune(text)
	if len(runes) > MaxTextLen {
		ctx.log().Warnf(w.component(), "text %q truncated to %d characters", text, MaxTextLen)
		return string(runes[:MaxTextLen])
	}
	if w.text.visible > 0 && len(runes) > w.text.visible {
		ctx.log().Warnf(w.component(), "text %q longer than visible size %d", text, w.text.visible)
	}
	return text
}

func (w *Widget) visibleText() string {
	runes := []rune(w.text.value)
	if w.text.visible > 0 && len(runes) > w.text.visible {
		return string(runes[:w.text.visible])
	}
	return w.text.value
}

// renderLength is the pixel width of text as it will be drawn.
func (w *Widget) renderLength(text string) int {
	if w.text.variableWidth {
		return font.RenderLength(text, w.text.font)
	}
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return n*(w.text.font.Width+1) - 1
}

// textOffset returns the x offset of the text inside the widget.
func (w *Widget) textOffset(ctx *RenderContext, text string) (int, bool) {
	length := w.renderLength(text)
	var offset int
	switch w.text.align {
	case AlignRight:
		offset = w.text.x - length - 2
	case AlignCenter:
		offset = w.text.x/2 - length/2
	case AlignLeft:
		offset = w.icon.width + iconTextGap
	default:
		ctx.log().Errorf(w.component(), "unknown alignment %v", w.text.align)
		return 0, false
	}
	if offset < 0 {
		ctx.log().Warnf(w.component(), "text %q does not fit, offset %d clamped", text, offset)
		offset = 0
	}
	return offset, true
}

func (w *Widget) textColor() color.RGBA {
	c := w.text.color
	if w.text.alertLevel > 0 && leadingFloat(w.text.value) > w.text.alertLevel {
		c = w.text.alertColor
	}
	return render.Brighten(c, w.text.boost)
}

func (w *Widget) renderText(ctx *RenderContext) {
	if !w.active {
		return
	}
	if !w.text.configured {
		ctx.log().Errorf(w.component(), "text rendered before it was configured")
		return
	}
	text := w.visibleText()
	offset, ok := w.textOffset(ctx, text)
	if !ok {
		return
	}
	x, y := w.x+offset, w.y+w.text.y
	c := w.textColor()
	if w.text.render != nil {
		w.text.render(ctx.Sink, x, y, c, text, w.text.font, w.text.variableWidth)
		return
	}
	font.Draw(ctx.Sink, x, y, c, text, w.text.font, w.text.variableWidth, ctx.log())
}
