package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/weather"
	"github.com/rook-computer/girder/internal/widget"
)

type handler func(ctx *widget.RenderContext, payload []byte)

// Sun states published on weather/sun.
const (
	SunAbove = "above_horizon"
	SunBelow = "below_horizon"
)

var thermostatIcons = map[string]string{
	"heating":     assets.IconThermoHeat,
	"cooling":     assets.IconThermoCool,
	"idle (heat)": assets.IconThermoModeHeat,
	"idle (cool)": assets.IconThermoModeCool,
	"fan_running": assets.IconThermoFan,
	"off":         assets.IconHome,
}

func (d *Dashboard) buildRoutes() map[string]handler {
	text := func(w *widget.Widget, fn widget.Transform) handler {
		return func(ctx *widget.RenderContext, payload []byte) {
			w.UpdateTextWith(ctx, payload, fn, true)
		}
	}
	return map[string]handler{
		transport.TopicOutdoorTemp:     text(d.weather.Widget, widget.TempInt),
		transport.TopicOutdoorDewPoint: text(d.outdoorDew, widget.TempC2F),
		transport.TopicOutdoorPM25:     text(d.pm25, widget.FloatStrLen),
		transport.TopicLivingRoomTemp:  text(d.houseTemp, widget.TempC2F),
		transport.TopicLivingRoomDew:   text(d.houseDew, widget.TempC2F),
		transport.TopicWindSpeed:       text(d.wind, widget.FloatStrLen),
		transport.TopicRainfall:        text(d.rainGauge, widget.FloatStrLen),

		transport.TopicWeatherCurrent:  d.onWeatherCurrent,
		transport.TopicForecastState:   d.onForecastState,
		transport.TopicForecastTemp:    d.onForecastTemp,
		transport.TopicSun:             d.onSun,
		transport.TopicThermostatState: d.onThermostat,
		transport.TopicCalendarEvent:   d.onCalendar,
		transport.TopicSignBrightness:  d.onBrightness,
		transport.TopicSignQR:          d.onQR,
		transport.TopicDebugWidget:     d.onDebugWidget,
	}
}

func payloadString(payload []byte) string {
	return strings.TrimSpace(string(payload))
}

func (d *Dashboard) onWeatherCurrent(ctx *widget.RenderContext, payload []byte) {
	d.weather.UpdateCondition(ctx, payloadString(payload), d.daytime, d.Icons)
}

func (d *Dashboard) onForecastState(ctx *widget.RenderContext, payload []byte) {
	t := weather.LookupAt(payloadString(payload), weather.DayTimeFromBool(d.daytime))
	d.forecast.UpdateIcon(ctx, t.Icon(), d.Icons)
}

// onForecastTemp shows the forecast over the current weather for a while.
func (d *Dashboard) onForecastTemp(ctx *widget.RenderContext, payload []byte) {
	d.showInWeatherArea(ctx, d.forecast, forecastShown)
	d.forecast.UpdateText(ctx, payloadString(payload), false)
	d.forecast.Render(ctx)
}

// showInWeatherArea makes shown the only active widget of the rectangle
// shared by weather, forecast and qr. An overlay flips back after
// shownFor; the weather widget takes the area again once no overlay is
// active (see restoreWeather).
func (d *Dashboard) showInWeatherArea(ctx *widget.RenderContext, shown *widget.Widget, shownFor time.Duration) {
	for _, w := range []*widget.Widget{d.weather.Widget, d.forecast, d.qr} {
		w.CancelResetActive()
		w.SetActive(w == shown)
	}
	if shown != d.weather.Widget && shownFor > 0 {
		shown.SetResetActive(ctx, shownFor)
	}
}

// restoreWeather reactivates the weather widget when an overlay expired
// and left the shared area empty.
func (d *Dashboard) restoreWeather(ctx *widget.RenderContext) {
	if d.weather.Active() || d.forecast.Active() || d.qr.Active() {
		return
	}
	d.weather.SetActive(true)
	d.weather.Render(ctx)
}

func (d *Dashboard) onSun(ctx *widget.RenderContext, payload []byte) {
	switch state := payloadString(payload); state {
	case SunAbove:
		d.daytime = true
		d.textColor = render.TextDayColor
		d.setBrightness(ctx, d.Levels.Day)
	case SunBelow:
		d.daytime = false
		d.textColor = render.TextNightColor
		d.setBrightness(ctx, d.Levels.Night)
	default:
		d.Logger.Errorf("dashboard", "unknown sun state %q, skipping update", state)
		return
	}
	d.Manager.SetTextColor(d.textColor)
	d.Refresh()
}

func (d *Dashboard) onThermostat(ctx *widget.RenderContext, payload []byte) {
	state := payloadString(payload)
	key, ok := thermostatIcons[state]
	if !ok {
		d.Logger.Warnf("dashboard", "unknown thermostat state %q", state)
		return
	}
	d.houseTemp.UpdateIcon(ctx, key, d.Icons)
}

func (d *Dashboard) onCalendar(ctx *widget.RenderContext, payload []byte) {
	d.calendar.UpdateText(ctx, strings.TrimRight(string(payload), "\r\n"), true)
}

func (d *Dashboard) onBrightness(ctx *widget.RenderContext, payload []byte) {
	percent := atoi(payloadString(payload))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	d.setBrightness(ctx, percent)
	d.Refresh()
}

// onQR shows payload as a QR code in place of the weather. An empty
// payload hides it again.
func (d *Dashboard) onQR(ctx *widget.RenderContext, payload []byte) {
	text := payloadString(payload)
	if text == "" {
		d.showInWeatherArea(ctx, d.weather.Widget, 0)
		d.Refresh()
		return
	}
	d.showInWeatherArea(ctx, d.qr, qrShown)
	d.qr.UpdateIcon(ctx, assets.QRPrefix+text, d.Icons)
}

// onDebugWidget toggles the corner markers of the named widget, or of
// every widget for "*".
func (d *Dashboard) onDebugWidget(ctx *widget.RenderContext, payload []byte) {
	name := payloadString(payload)
	if name == "*" {
		for _, e := range d.Manager.Widgets() {
			w := e.Base()
			w.SetDebug(!w.Debug())
		}
		d.Refresh()
		return
	}
	e, ok := d.Manager.ByName(name)
	if !ok {
		d.Logger.Warnf("dashboard", "no widget called %q", name)
		return
	}
	w := e.Base()
	w.SetDebug(!w.Debug())
	d.Refresh()
}

// atoi parses a leading integer. Trailing text is ignored and an
// unparseable value reads as zero.
func atoi(s string) int {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
