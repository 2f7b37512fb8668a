package app

import (
	"bytes"
	"context"
	"image"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/state"
	"github.com/rook-computer/girder/internal/transport"
	"github.com/rook-computer/girder/internal/weather"
	"github.com/rook-computer/girder/internal/widget"
)

type brightnessRecorder struct{ values []int }

func (b *brightnessRecorder) SetBrightness(percent int) { b.values = append(b.values, percent) }

var start = time.Date(2026, 3, 4, 9, 30, 15, 0, time.UTC)

type fixture struct {
	dash   *Dashboard
	ctx    *widget.RenderContext
	rec    *render.Recorder
	output *brightnessRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dash := NewDashboard(&assets.Resolver{}, font.Builtin(), DefaultBrightnessLevels(), rand.New(rand.NewPCG(1, 2)))
	out := &brightnessRecorder{}
	dash.Output = out
	rec := &render.Recorder{Inner: render.NewCanvas(render.CanvasWidth, render.CanvasHeight)}
	ctx := dash.Context(rec, start)
	require.NoError(t, dash.Setup(ctx))
	return &fixture{dash: dash, ctx: ctx, rec: rec, output: out}
}

func (f *fixture) send(topic, payload string) {
	f.dash.OnEvent(f.ctx, transport.Event{Topic: topic, Payload: []byte(payload)})
}

func (f *fixture) at(d time.Duration) {
	f.ctx = f.dash.Context(f.rec, start.Add(d))
	f.dash.Tick(f.ctx)
}

func TestSetupLayout(t *testing.T) {
	f := newFixture(t)
	m := f.dash.Manager
	require.Equal(t, 10, m.Len())

	origins := map[string]image.Point{
		WidgetHouseTemp:       {0, 1},
		WidgetHouseDewPoint:   {34, 1},
		WidgetRainGauge:       {1, 12},
		WidgetOutdoorDewPoint: {34, 12},
		WidgetWind:            {1, 23},
		WidgetPM25:            {34, 23},
		WidgetWeather:         {64, 0},
		WidgetForecast:        {64, 0},
		WidgetCalendar:        {1, 45},
	}
	for name, want := range origins {
		e, ok := m.ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, e.Base().Bounds().Min, name)
	}

	rain, _ := m.ByName(WidgetRainGauge)
	assert.Equal(t, "--", rain.Base().Text())
	forecast, _ := m.ByName(WidgetForecast)
	assert.False(t, forecast.Base().Active())
	assert.Equal(t, []int{10}, f.output.values)
}

func TestSensorTopics(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		topic, payload, widget, want string
	}{
		{transport.TopicOutdoorTemp, "21.7", WidgetWeather, "21"},
		{transport.TopicOutdoorDewPoint, "10", WidgetOutdoorDewPoint, "50°"},
		{transport.TopicOutdoorPM25, "3.42", WidgetPM25, "3.4"},
		{transport.TopicLivingRoomTemp, "22.5", WidgetHouseTemp, "72°"},
		{transport.TopicLivingRoomDew, "0", WidgetHouseDewPoint, "32°"},
		{transport.TopicWindSpeed, "12.8", WidgetWind, "12"},
		{transport.TopicRainfall, "0", WidgetRainGauge, "--"},
	}
	for _, tc := range cases {
		f.send(tc.topic, tc.payload)
		e, _ := f.dash.Manager.ByName(tc.widget)
		assert.Equal(t, tc.want, e.Base().Text(), tc.topic)
	}

	house, _ := f.dash.Manager.ByName(WidgetHouseTemp)
	assert.True(t, house.Base().Boosted())
	f.at(widget.RefreshDelay)
	assert.False(t, house.Base().Boosted())
}

func TestUnknownTopicIgnored(t *testing.T) {
	f := newFixture(t)
	f.rec.Reset()
	f.send("garage/door", "open")
	assert.Zero(t, f.rec.Len())
	assert.Equal(t, uint64(1), f.dash.Events())
	assert.Equal(t, "garage/door", f.dash.LastTopic())
}

func TestForecastTimeBox(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicForecastState, "rainy")
	f.send(transport.TopicForecastTemp, "68/51")

	assert.True(t, f.dash.forecast.Active())
	assert.False(t, f.dash.weather.Active())
	assert.Equal(t, "68/51", f.dash.forecast.Text())
	assert.Equal(t, "weather/rainy", f.dash.forecast.IconKey())

	f.at(9 * time.Second)
	assert.True(t, f.dash.forecast.Active())

	f.at(forecastShown)
	assert.False(t, f.dash.forecast.Active())
	assert.True(t, f.dash.weather.Active())
}

func TestWeatherCurrent(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicWeatherCurrent, "snowy")
	assert.Equal(t, weather.Snowy, f.dash.weather.Weather())
	assert.True(t, f.dash.weather.Animated())

	f.send(transport.TopicSun, SunBelow)
	f.send(transport.TopicWeatherCurrent, "sunny")
	assert.Equal(t, weather.ClearNight, f.dash.weather.Weather())
}

func TestSunState(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicSun, SunBelow)
	assert.False(t, f.dash.Daytime())
	assert.Equal(t, 25, f.dash.Brightness())
	assert.Equal(t, 25, f.ctx.Brightness)
	assert.Equal(t, render.TextNightColor, f.dash.textColor)

	f.send(transport.TopicSun, "twilight")
	assert.False(t, f.dash.Daytime())

	f.send(transport.TopicSun, SunAbove)
	assert.True(t, f.dash.Daytime())
	assert.Equal(t, []int{10, 25, 50}, f.output.values)
	assert.True(t, f.dash.force)
	f.at(time.Second)
	assert.False(t, f.dash.force)
}

func TestBrightnessClamped(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicSignBrightness, "150")
	assert.Equal(t, 100, f.dash.Brightness())
	f.send(transport.TopicSignBrightness, "40%")
	assert.Equal(t, 40, f.dash.Brightness())
	f.send(transport.TopicSignBrightness, "dim")
	assert.Equal(t, 0, f.dash.Brightness())
}

func TestThermostatIcons(t *testing.T) {
	f := newFixture(t)
	for state, key := range thermostatIcons {
		f.send(transport.TopicThermostatState, state)
		assert.Equal(t, key, f.dash.houseTemp.IconKey(), state)
	}
	f.send(transport.TopicThermostatState, "heating")
	f.send(transport.TopicThermostatState, "defrost")
	assert.Equal(t, assets.IconThermoHeat, f.dash.houseTemp.IconKey())
}

func TestCalendarCycles(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicCalendarEvent, "Dentist 3pm\nTrash day\n")
	assert.Equal(t, "Dentist 3pm", f.dash.calendar.Text())
	f.at(widget.RefreshDelay)
	assert.Equal(t, "Trash day", f.dash.calendar.Text())
}

func TestQROverlay(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicSignQR, "https://example.com")
	assert.True(t, f.dash.qr.Active())
	assert.False(t, f.dash.weather.Active())
	assert.Equal(t, "qr:https://example.com", f.dash.qr.IconKey())

	f.at(qrShown)
	assert.False(t, f.dash.qr.Active())
	assert.True(t, f.dash.weather.Active())

	f.send(transport.TopicSignQR, "again")
	f.send(transport.TopicSignQR, "")
	assert.False(t, f.dash.qr.Active())
	assert.True(t, f.dash.weather.Active())
}

// weatherAreaOwners lists the active widgets of the shared weather area.
func (f *fixture) weatherAreaOwners() []string {
	var owners []string
	for _, w := range []*widget.Widget{f.dash.weather.Widget, f.dash.forecast, f.dash.qr} {
		if w.Active() {
			owners = append(owners, w.Name)
		}
	}
	return owners
}

func TestForecastReplacesPendingQR(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicSignQR, "https://example.com")
	assert.Equal(t, []string{WidgetQR}, f.weatherAreaOwners())

	f.at(5 * time.Second)
	f.send(transport.TopicForecastTemp, "68/51")
	assert.Equal(t, []string{WidgetForecast}, f.weatherAreaOwners())

	for _, at := range []time.Duration{10 * time.Second, 15 * time.Second, 20 * time.Second, 35 * time.Second, 40 * time.Second} {
		f.at(at)
		require.Len(t, f.weatherAreaOwners(), 1, "t=%s", at)
	}
	assert.Equal(t, []string{WidgetWeather}, f.weatherAreaOwners())
}

func TestEmptyQRHidesForecast(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicForecastTemp, "68/51")
	f.at(2 * time.Second)
	f.send(transport.TopicSignQR, "")
	assert.Equal(t, []string{WidgetWeather}, f.weatherAreaOwners())

	f.at(forecastShown + 2*time.Second)
	assert.Equal(t, []string{WidgetWeather}, f.weatherAreaOwners())
}

func TestQRReplacesForecast(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicForecastTemp, "68/51")
	f.at(time.Second)
	f.send(transport.TopicSignQR, "hello")
	assert.Equal(t, []string{WidgetQR}, f.weatherAreaOwners())

	f.at(forecastShown + time.Second)
	assert.Equal(t, []string{WidgetQR}, f.weatherAreaOwners())

	f.at(time.Second + qrShown)
	assert.Equal(t, []string{WidgetWeather}, f.weatherAreaOwners())
}

func TestDebugWidget(t *testing.T) {
	f := newFixture(t)
	f.send(transport.TopicDebugWidget, WidgetPM25)
	assert.True(t, f.dash.pm25.Debug())
	f.send(transport.TopicDebugWidget, "*")
	assert.False(t, f.dash.pm25.Debug())
	assert.True(t, f.dash.wind.Debug())
}

func TestClockRedrawsOnMinuteChange(t *testing.T) {
	rec := &render.Recorder{}
	c := NewClock(clockX, font.Clock())
	ctx := &widget.RenderContext{Now: start, Sink: rec}

	assert.True(t, c.Render(ctx, false))
	assert.Contains(t, rec.Glyphs(), "Wed")
	assert.Contains(t, rec.Glyphs(), "9")

	ctx.Now = start.Add(30 * time.Second)
	assert.False(t, c.Render(ctx, false))
	assert.True(t, c.Render(ctx, true))

	ctx.Now = start.Add(time.Minute)
	assert.True(t, c.Render(ctx, false))
}

func TestAtoi(t *testing.T) {
	assert.Equal(t, 42, atoi("42"))
	assert.Equal(t, -5, atoi("-5x"))
	assert.Equal(t, 0, atoi(""))
	assert.Equal(t, 0, atoi("x1"))
}

func TestRunProcessesInjectedEvents(t *testing.T) {
	store := state.NewStore()
	device := render.NewNoopDevice()
	a := New(store, device, Options{Seed: 3})
	a.PollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.NoError(t, a.Inject(ctx, transport.TopicLivingRoomTemp, []byte("20")))
	require.Eventually(t, func() bool {
		snap := store.Snapshot()
		for _, w := range snap.Widgets {
			if w.Name == WidgetHouseTemp && w.Text == "68°" {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)

	snap := store.Snapshot()
	assert.Equal(t, state.RUNNING, snap.Phase)
	assert.NotNil(t, store.Frame())

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, state.STOPPED, store.Snapshot().Phase)
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf, false)
	l.Debugf("x", "hidden")
	l.Warnf("mqtt", "lost %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.HasSuffix(buf.String(), "[WARN] mqtt: lost 2\n"))
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(&buf, false)
	l.Debugf("x", "hidden")
	l.Errorf("font", "bad glyph %q", 'x')
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "bad glyph")
	assert.Contains(t, out, "font")
}
