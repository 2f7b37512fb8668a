package widget

import "time"

// Boost brightens part by amount until d has passed. The boost is undone
// by CheckResetBrightness.
func (w *Widget) Boost(ctx *RenderContext, amount int, part Part, d time.Duration) {
	w.resetBrightnessAt = ctx.Now.Add(d)
	w.TempAdjustBrightness(ctx, amount, part)
}

// TempAdjustBrightness sets the boost of part without a deadline.
func (w *Widget) TempAdjustBrightness(ctx *RenderContext, amount int, part Part) {
	switch part {
	case PartIcon:
		w.icon.boost = amount
	case PartText:
		w.text.boost = amount
	case PartBoth:
		w.icon.boost = amount
		w.text.boost = amount
	default:
		ctx.log().Errorf(w.component(), "unknown brightness part %d", int(part))
		return
	}
	w.icon.brightness = ctx.Brightness + w.icon.boost
	w.text.brightness = ctx.Brightness + w.text.boost
}

// ResetBrightness returns part to the global brightness.
func (w *Widget) ResetBrightness(ctx *RenderContext, part Part) {
	switch part {
	case PartIcon:
		w.icon.brightness = ctx.Brightness
	case PartText:
		w.text.brightness = ctx.Brightness
	case PartBoth:
		w.icon.brightness = ctx.Brightness
		w.text.brightness = ctx.Brightness
	default:
		ctx.log().Errorf(w.component(), "unknown brightness part %d", int(part))
	}
}

// CheckResetBrightness ends an expired boost and redraws once.
func (w *Widget) CheckResetBrightness(ctx *RenderContext) {
	if w.resetBrightnessAt.IsZero() || ctx.Now.Before(w.resetBrightnessAt) {
		return
	}
	w.resetBrightnessAt = time.Time{}
	w.icon.boost = 0
	w.text.boost = 0
	w.ResetBrightness(ctx, PartBoth)
	w.Render(ctx)
}

// UpdateBrightness follows a change of the global brightness. Each part
// is redrawn only if its effective brightness changed.
func (w *Widget) UpdateBrightness(ctx *RenderContext) {
	redrawn := false
	if want := ctx.Brightness + w.icon.boost; w.icon.brightness != want {
		w.icon.brightness = want
		w.renderIcon(ctx)
		redrawn = true
	}
	if want := ctx.Brightness + w.text.boost; w.text.brightness != want {
		w.text.brightness = want
		w.renderText(ctx)
		redrawn = true
	}
	if redrawn && w.active {
		w.renders++
	}
}

// Brightness returns the effective icon and text brightness.
func (w *Widget) Brightness() (icon, text int) {
	return w.icon.brightness, w.text.brightness
}
