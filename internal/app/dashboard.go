package app

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/render/layout"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/widget"
)

// Widget names, also used by debug/widget.
const (
	WidgetHouseTemp       = "houseTemp"
	WidgetHouseDewPoint   = "houseDewpoint"
	WidgetRainGauge       = "outdoorRainGauge"
	WidgetOutdoorDewPoint = "outdoorDewpoint"
	WidgetWind            = "outdoorWind"
	WidgetPM25            = "outdoorPM25"
	WidgetWeather         = "outdoorWeather"
	WidgetForecast        = "outdoorForecast"
	WidgetQR              = "qr"
	WidgetCalendar        = "calendar"
)

const (
	weatherX      = 64
	clockX        = weatherX + 32
	weatherTextY  = 26
	forecastShown = widget.RefreshActiveDelay
	qrShown       = 30 * time.Second
	pm25Alert     = 20.0
)

// The left half is a grid of small widgets, three rows of two plus a
// calendar row below.
var sensorGrid = layout.Grid{Origin: image.Pt(0, 1), ColumnPitch: 34, RowPitch: 11}

// BrightnessLevels are the global brightness values in percent.
type BrightnessLevels struct {
	Initial int
	Day     int
	Night   int
}

func DefaultBrightnessLevels() BrightnessLevels {
	return BrightnessLevels{Initial: 10, Day: 50, Night: 25}
}

// BrightnessSetter receives global brightness changes. render.Device
// implements it.
type BrightnessSetter interface {
	SetBrightness(percent int)
}

// Dashboard owns every widget on the sign and maps events onto them. It
// is driven from a single goroutine.
type Dashboard struct {
	Manager *widget.Manager
	Icons   assets.IconResolver
	Fonts   font.Set
	Levels  BrightnessLevels
	Output  BrightnessSetter
	Logger  Logger

	brightness int
	daytime    bool
	textColor  color.RGBA
	force      bool
	events     uint64
	lastTopic  string

	clock      *Clock
	houseTemp  *widget.Widget
	houseDew   *widget.Widget
	rainGauge  *widget.Widget
	outdoorDew *widget.Widget
	wind       *widget.Widget
	pm25       *widget.Widget
	weather    *widget.WeatherWidget
	forecast   *widget.Widget
	qr         *widget.Widget
	calendar   *widget.MultilineWidget

	routes map[string]handler
}

func NewDashboard(icons assets.IconResolver, fonts font.Set, levels BrightnessLevels, rng *rand.Rand) *Dashboard {
	d := &Dashboard{
		Manager:    widget.NewManager(),
		Icons:      icons,
		Fonts:      fonts,
		Levels:     levels,
		Logger:     NoopLogger{},
		brightness: levels.Initial,
		daytime:    true,
		textColor:  render.TextDayColor,
		clock:      NewClock(clockX, fonts.Clock),
		houseTemp:  widget.New(WidgetHouseTemp),
		houseDew:   widget.New(WidgetHouseDewPoint),
		rainGauge:  widget.New(WidgetRainGauge),
		outdoorDew: widget.New(WidgetOutdoorDewPoint),
		wind:       widget.New(WidgetWind),
		pm25:       widget.New(WidgetPM25),
		weather:    widget.NewWeather(WidgetWeather, rng),
		forecast:   widget.New(WidgetForecast),
		qr:         widget.New(WidgetQR),
		calendar:   widget.NewMultiline(WidgetCalendar),
	}
	d.routes = d.buildRoutes()
	return d
}

// Brightness returns the global brightness in percent.
func (d *Dashboard) Brightness() int { return d.brightness }

// Daytime reports the last sun state.
func (d *Dashboard) Daytime() bool { return d.daytime }

// Events counts dispatched events.
func (d *Dashboard) Events() uint64 { return d.events }

func (d *Dashboard) LastTopic() string { return d.lastTopic }

// Context returns a render context for one loop iteration.
func (d *Dashboard) Context(sink render.Sink, now time.Time) *widget.RenderContext {
	return &widget.RenderContext{Now: now, Brightness: d.brightness, Sink: sink, Logger: d.Logger}
}

// small configures one of the sensor grid widgets.
func (d *Dashboard) small(w *widget.Widget, col, row, dx int, iconW, iconH int) error {
	p := sensorGrid.Cell(col, row)
	w.SetOrigin(p.X+dx, p.Y)
	w.SetIconSize(iconW, iconH)
	return errors.Join(
		w.SetSize(widget.SizeSmall),
		w.AutoTextConfig(widget.AlignRight, d.textColor),
		w.SetVisibleSize(3),
	)
}

// Setup lays out the widgets, loads their initial icons and draws the
// first frame.
func (d *Dashboard) Setup(ctx *widget.RenderContext) error {
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	add(d.small(d.houseTemp, 0, 0, 0, 8, 7))
	d.houseTemp.SetIconOrigin(0, 1)
	add(d.small(d.houseDew, 1, 0, 0, 8, 7))
	d.houseDew.SetIconOrigin(0, 1)
	add(d.small(d.rainGauge, 0, 1, 1, 8, 8))
	add(d.small(d.outdoorDew, 1, 1, 0, 8, 8))
	add(d.small(d.wind, 0, 2, 1, 8, 8))
	add(d.small(d.pm25, 1, 2, 0, 7, 8))
	d.pm25.SetAlertLevel(pm25Alert, render.AlertColor)

	for _, w := range []*widget.Widget{d.weather.Widget, d.forecast, d.qr} {
		w.SetOrigin(weatherX, 0)
		add(w.SetSize(widget.SizeLarge))
		w.SetBounds(32, 34)
	}
	d.weather.SetIconSize(32, 25)
	add(d.weather.SetCustomTextConfig(32, weatherTextY, render.White, widget.AlignCenter, d.Fonts.Large))
	add(d.weather.SetVisibleSize(3))

	d.forecast.SetIconSize(32, 25)
	add(d.forecast.SetCustomTextConfig(36, weatherTextY-2, d.textColor, widget.AlignCenter, d.Fonts.Small))
	d.forecast.SetCustomTextRender(drawTextCustom)
	d.forecast.SetActive(false)
	add(d.forecast.SetVisibleSize(5))

	d.qr.SetIconSize(32, 32)
	add(d.qr.SetCustomTextConfig(32, 0, d.textColor, widget.AlignCenter, d.Fonts.Small))
	d.qr.SetActive(false)

	p := sensorGrid.Cell(0, 4)
	d.calendar.SetOrigin(p.X+1, p.Y)
	add(d.calendar.SetSize(widget.SizeLong))
	d.calendar.SetIconSize(9, 8)
	add(d.calendar.SetCustomTextConfig(62, 0, d.textColor, widget.AlignLeft, d.Fonts.Small))
	d.calendar.SetCustomTextRender(drawTextCustom)
	add(d.calendar.SetVisibleSize(widget.MaxTextLen))

	for _, e := range []widget.Element{
		d.houseTemp, d.houseDew, d.rainGauge, d.outdoorDew, d.wind, d.pm25,
		d.weather, d.forecast, d.qr, d.calendar,
	} {
		d.Manager.Add(e)
	}

	if err := errors.Join(errs...); err != nil {
		d.Logger.Errorf("dashboard", "layout: %v", err)
	}

	ctx.Sink.FillRect(0, 0, render.CanvasWidth, render.CanvasHeight, render.Black)
	d.houseTemp.UpdateIcon(ctx, assets.IconHome, d.Icons)
	d.houseDew.UpdateIcon(ctx, assets.IconDewPoint, d.Icons)
	d.rainGauge.UpdateIcon(ctx, assets.IconRain, d.Icons)
	d.outdoorDew.UpdateIcon(ctx, assets.IconDewPoint, d.Icons)
	d.wind.UpdateIcon(ctx, assets.IconWind, d.Icons)
	d.pm25.UpdateIcon(ctx, assets.IconAirQuality, d.Icons)
	d.weather.UpdateCondition(ctx, "partlycloudy", d.daytime, d.Icons)
	d.forecast.UpdateIcon(ctx, "weather/partlycloudy", d.Icons)
	d.calendar.UpdateIcon(ctx, assets.IconCalendar, d.Icons)

	// These update slowly, so start blank.
	d.rainGauge.UpdateText(ctx, "--", false)
	d.wind.UpdateText(ctx, "--", false)

	d.setBrightness(ctx, d.brightness)
	d.Manager.Render(ctx)
	d.clock.Render(ctx, true)
	return errors.Join(errs...)
}

// drawTextCustom draws fixed-pitch text one pixel tighter than the face.
func drawTextCustom(sink render.Sink, x, y int, c color.RGBA, text string, f *font.Font, _ bool) {
	font.DrawFixed(sink, x, y, c, text, f, -1)
}

// Tick runs once per loop iteration after any event was dispatched.
func (d *Dashboard) Tick(ctx *widget.RenderContext) {
	ctx.Brightness = d.brightness
	d.clock.Render(ctx, false)
	force := d.force
	d.Manager.Tick(ctx, force)
	d.restoreWeather(ctx)
	if force {
		d.Logger.Infof("dashboard", "forcing dashboard refresh")
		d.Manager.Render(ctx)
		d.clock.Render(ctx, true)
		d.force = false
	}
}

// Refresh requests a full redraw on the next tick.
func (d *Dashboard) Refresh() { d.force = true }

func (d *Dashboard) setBrightness(ctx *widget.RenderContext, percent int) {
	d.brightness = percent
	ctx.Brightness = percent
	if d.Output != nil {
		d.Output.SetBrightness(percent)
	}
}

// OnEvent dispatches ev on its exact topic. Unknown topics are ignored.
func (d *Dashboard) OnEvent(ctx *widget.RenderContext, ev transport.Event) {
	d.events++
	d.lastTopic = ev.Topic
	h, ok := d.routes[ev.Topic]
	if !ok {
		d.Logger.Debugf("dashboard", "ignoring %s", ev.Topic)
		return
	}
	d.Logger.Debugf("dashboard", "%s: %q", ev.Topic, ev.Payload)
	h(ctx, ev.Payload)
}
