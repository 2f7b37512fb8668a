package widget

import (
	"math/rand/v2"
	"time"

	"github.com/rook-computer/girder/internal/animation"
	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/weather"
)

// WeatherWidget shows the current condition icon and animates it when
// the condition has an animation.
type WeatherWidget struct {
	*Widget

	rng        *rand.Rand
	kind       weather.Type
	background []byte
	anim       animation.Animation
	lastFrame  time.Time
}

func NewWeather(name string, rng *rand.Rand) *WeatherWidget {
	return &WeatherWidget{Widget: New(name), rng: rng, kind: weather.Undefined}
}

// Weather returns the condition on display.
func (w *WeatherWidget) Weather() weather.Type { return w.kind }

// Animated reports whether an animation is running.
func (w *WeatherWidget) Animated() bool { return w.anim != nil }

// UpdateCondition maps a condition name to a weather type and shows it.
func (w *WeatherWidget) UpdateCondition(ctx *RenderContext, condition string, daytime bool, icons assets.IconResolver) {
	w.UpdateWeather(ctx, weather.LookupAt(condition, weather.DayTimeFromBool(daytime)), icons)
}

// UpdateWeather shows the icon for t and starts its animation. Repeating
// the current condition keeps a running animation going.
func (w *WeatherWidget) UpdateWeather(ctx *RenderContext, t weather.Type, icons assets.IconResolver) {
	if t == w.kind && w.icon.ready() {
		return
	}
	w.kind = t
	w.anim = nil
	w.UpdateIcon(ctx, t.Icon(), icons)
	if !w.icon.ready() {
		return
	}
	w.background = append(w.background[:0], w.icon.rgb...)

	anim := animation.ForWeather(t, w.rng)
	if anim == nil {
		ctx.log().Debugf(w.component(), "%s is not animated", t)
		return
	}
	cfg := animation.Config{
		Foreground: w.icon.rgb,
		Background: w.background,
		ImageWidth: w.icon.width,
		Weather:    t,
	}
	if key := t.Overlay(); key != "" {
		overlay, err := icons.Resolve(key, w.icon.width, w.icon.height)
		if err != nil {
			ctx.log().Warnf(w.component(), "overlay %q: %v", key, err)
		} else {
			cfg.Overlay = overlay.RGB
		}
	}
	if err := anim.Configure(cfg); err != nil {
		ctx.log().Errorf(w.component(), "configuring animation for %s: %v", t, err)
		return
	}
	w.anim = anim
	w.lastFrame = ctx.Now
}

// CheckUpdate advances the animation by one frame per frame period while
// the widget is visible.
func (w *WeatherWidget) CheckUpdate(ctx *RenderContext) {
	if w.anim == nil || !w.active {
		return
	}
	if ctx.Now.Sub(w.lastFrame) < w.anim.FramePeriod() {
		return
	}
	w.lastFrame = ctx.Now
	w.anim.Tick()
	w.renderIcon(ctx)
}
