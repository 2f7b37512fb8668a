package widget

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/weather"
)

type testLogger struct {
	warnings []string
	errors   []string
}

func (l *testLogger) Debugf(component, format string, args ...interface{}) {}
func (l *testLogger) Infof(component, format string, args ...interface{})  {}
func (l *testLogger) Warnf(component, format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *testLogger) Errorf(component, format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

var epoch = time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

func newContext() (*RenderContext, *render.Recorder, *testLogger) {
	rec := &render.Recorder{}
	log := &testLogger{}
	return &RenderContext{Now: epoch, Brightness: 50, Sink: rec, Logger: log}, rec, log
}

func newSmall(t *testing.T) *Widget {
	t.Helper()
	w := New("temp")
	require.NoError(t, w.SetSize(SizeSmall))
	w.SetOrigin(1, 1)
	require.NoError(t, w.AutoTextConfig(AlignRight, render.TextDayColor))
	return w
}

func TestInactiveWidgetDrawsNothing(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	w.SetActive(false)

	w.Render(ctx)
	w.UpdateText(ctx, "72", true)
	w.Clear(ctx, false)
	assert.Zero(t, rec.Len())
	assert.Zero(t, w.Renders())

	w.Clear(ctx, true)
	ops := rec.Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, render.Op{Kind: "rect", X: 1, Y: 1, Width: 28, Height: 9, Color: render.Black}, ops[0])
}

func TestUpdateTextIsIdempotent(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)

	w.UpdateText(ctx, "72", false)
	assert.Equal(t, 1, w.Renders())
	n := rec.Len()

	w.UpdateText(ctx, "72", true)
	assert.Equal(t, 1, w.Renders())
	assert.Equal(t, n, rec.Len())
	assert.False(t, w.Boosted())
}

func TestZeroReadingShownAsDashes(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	w.UpdateText(ctx, "0.0", false)
	assert.Equal(t, "--", w.Text())
	assert.Equal(t, "--", rec.Glyphs())

	renders, boosted := w.Renders(), w.Boosted()
	w.UpdateText(ctx, "0.0", true)
	assert.Equal(t, "--", w.Text())
	assert.Equal(t, renders, w.Renders(), "repeated zero reading is not a change")
	assert.Equal(t, boosted, w.Boosted())
}

func TestTextTruncatedToMaxLen(t *testing.T) {
	ctx, _, log := newContext()
	w := newSmall(t)
	w.UpdateText(ctx, "abcdefghijklmnopqrst", false)
	assert.Equal(t, "abcdefghijklmnop", w.Text())
	assert.NotEmpty(t, log.warnings)
}

func TestVisibleSizeClampedAndTruncates(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	assert.Error(t, w.SetVisibleSize(20))
	require.NoError(t, w.SetVisibleSize(3))

	w.UpdateText(ctx, "1234", false)
	assert.Equal(t, "1234", w.Text())
	assert.Equal(t, "123", rec.Glyphs())
}

func TestBoostExpires(t *testing.T) {
	ctx, _, _ := newContext()
	w := newSmall(t)
	w.UpdateText(ctx, "72", false)
	w.ResetBrightness(ctx, PartBoth)

	w.Boost(ctx, BoostAmount, PartText, 30*time.Second)
	_, text := w.Brightness()
	assert.Equal(t, 150, text)
	renders := w.Renders()

	ctx.Now = epoch.Add(29 * time.Second)
	w.CheckResetBrightness(ctx)
	assert.True(t, w.Boosted())
	_, text = w.Brightness()
	assert.Equal(t, 150, text)
	assert.Equal(t, renders, w.Renders())

	ctx.Now = epoch.Add(31 * time.Second)
	w.CheckResetBrightness(ctx)
	assert.False(t, w.Boosted())
	icon, text := w.Brightness()
	assert.Equal(t, 50, icon)
	assert.Equal(t, 50, text)
	assert.Equal(t, renders+1, w.Renders())

	ctx.Now = epoch.Add(40 * time.Second)
	w.CheckResetBrightness(ctx)
	assert.Equal(t, renders+1, w.Renders())
}

func TestBoostedTextIsBrighter(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	w.UpdateText(ctx, "72", true)

	var glyph render.Op
	for _, op := range rec.Ops() {
		if op.Kind == "glyph" {
			glyph = op
			break
		}
	}
	assert.Equal(t, render.Brighten(render.TextDayColor, BoostAmount), glyph.Color)
	assert.True(t, w.Boosted())
}

func TestUpdateBrightnessOnlyRedrawsOnChange(t *testing.T) {
	ctx, _, _ := newContext()
	w := newSmall(t)
	w.UpdateText(ctx, "72", false)
	w.UpdateBrightness(ctx)
	renders := w.Renders()

	w.UpdateBrightness(ctx)
	assert.Equal(t, renders, w.Renders())

	ctx.Brightness = 25
	w.UpdateBrightness(ctx)
	assert.Equal(t, renders+1, w.Renders())
}

func TestTextAlignment(t *testing.T) {
	f := font.Default()
	length := font.RenderLength("72", f)
	cases := []struct {
		align  Align
		offset int
	}{
		{AlignRight, 28 - length - 2},
		{AlignCenter, 28/2 - length/2},
		{AlignLeft, 8 + iconTextGap},
	}
	for _, tc := range cases {
		t.Run(tc.align.String(), func(t *testing.T) {
			ctx, rec, _ := newContext()
			w := New("t")
			require.NoError(t, w.SetSize(SizeSmall))
			w.SetIconSize(8, 7)
			require.NoError(t, w.AutoTextConfig(tc.align, render.White))
			w.UpdateText(ctx, "72", false)

			for _, op := range rec.Ops() {
				if op.Kind == "glyph" {
					assert.Equal(t, tc.offset-font.Offset('7', f), op.X)
					assert.Equal(t, f.Height, op.Y)
					return
				}
			}
			t.Fatal("no glyph drawn")
		})
	}
}

func TestFixedWidthUsesCellPitch(t *testing.T) {
	f := font.Default()
	firstGlyphX := func(variable bool) int {
		ctx, rec, _ := newContext()
		w := New("t")
		require.NoError(t, w.SetSize(SizeSmall))
		require.NoError(t, w.AutoTextConfig(AlignRight, render.White))
		w.SetVariableWidth(variable)
		w.UpdateText(ctx, "11", false)
		for _, op := range rec.Ops() {
			if op.Kind == "glyph" {
				return op.X
			}
		}
		t.Fatal("no glyph drawn")
		return 0
	}

	fixedLength := 2*(f.Width+1) - 1
	assert.Equal(t, 28-fixedLength-2, firstGlyphX(false))
	assert.Equal(t, 28-font.RenderLength("11", f)-2-font.Offset('1', f), firstGlyphX(true))
}

func TestNegativeOffsetClamped(t *testing.T) {
	ctx, _, log := newContext()
	w := New("t")
	require.NoError(t, w.SetSize(SizeSmall))
	require.NoError(t, w.AutoTextConfig(AlignRight, render.White))
	w.UpdateText(ctx, "0123456789", false)
	assert.NotEmpty(t, log.warnings)
}

func TestAlertColor(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	w.SetAlertLevel(20.0, render.AlertColor)

	w.UpdateText(ctx, "25", false)
	assert.Contains(t, rec.Ops(), render.Op{Kind: "glyph", X: glyphX(t, rec), Y: 1 + 8, Rune: '2', Color: render.AlertColor})

	rec.Reset()
	w.UpdateText(ctx, "15", false)
	for _, op := range rec.Ops() {
		if op.Kind == "glyph" {
			assert.Equal(t, render.TextDayColor, op.Color)
		}
	}
}

func glyphX(t *testing.T, rec *render.Recorder) int {
	t.Helper()
	for _, op := range rec.Ops() {
		if op.Kind == "glyph" {
			return op.X
		}
	}
	t.Fatal("no glyph drawn")
	return 0
}

func TestTextBeforeConfigLogsError(t *testing.T) {
	ctx, _, log := newContext()
	w := New("t")
	require.NoError(t, w.SetSize(SizeSmall))
	w.UpdateText(ctx, "72", false)
	assert.NotEmpty(t, log.errors)
}

func TestLongWidgetHasNoDefaultTextLayout(t *testing.T) {
	w := New("calendar")
	require.NoError(t, w.SetSize(SizeLong))
	assert.Error(t, w.AutoTextConfig(AlignLeft, render.White))
	assert.Error(t, w.SetSize(Size(9)))
}

func TestCheckResetActiveFlips(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	w.SetActive(false)
	w.SetResetActive(ctx, RefreshActiveDelay)

	ctx.Now = epoch.Add(9 * time.Second)
	w.CheckResetActive(ctx)
	assert.False(t, w.Active())
	assert.Zero(t, rec.Len())

	ctx.Now = epoch.Add(10 * time.Second)
	w.CheckResetActive(ctx)
	assert.True(t, w.Active())
	assert.Equal(t, 1, w.Renders())

	// Going inactive leaves the shared rectangle alone.
	rec.Reset()
	w.SetResetActive(ctx, time.Second)
	ctx.Now = ctx.Now.Add(time.Second)
	w.CheckResetActive(ctx)
	assert.False(t, w.Active())
	assert.Zero(t, rec.Len())
}

func TestDebugCorners(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newSmall(t)
	w.SetDebug(true)
	w.Render(ctx)
	ops := rec.Ops()
	require.GreaterOrEqual(t, len(ops), 4)
	last := ops[len(ops)-4:]
	assert.Equal(t, 1, last[0].X)
	assert.Equal(t, 28, last[1].X)
	assert.Equal(t, 8, last[2].Y)
	assert.Equal(t, render.White, last[3].Color)
}

func TestUpdateIcon(t *testing.T) {
	ctx, rec, log := newContext()
	w := newSmall(t)
	icons := &assets.Resolver{}

	w.UpdateIcon(ctx, assets.IconHome, icons)
	assert.NotEmpty(t, log.errors, "icon size not configured")
	assert.Zero(t, rec.Len())

	w.SetIconSize(8, 7)
	w.UpdateIcon(ctx, assets.IconHome, icons)
	assert.Equal(t, assets.IconHome, w.IconKey())
	assert.Len(t, w.IconRGB(), 8*7*3)
	assert.False(t, w.Boosted())

	pixels := 0
	for _, op := range rec.Ops() {
		if op.Kind == "pixel" {
			pixels++
		}
	}
	assert.Equal(t, 8*7, pixels)
}

func TestSetIconImageValidatesSize(t *testing.T) {
	w := New("t")
	assert.Error(t, w.SetIconImage(2, 2, make([]byte, 11)))
	assert.NoError(t, w.SetIconImage(2, 2, make([]byte, 12)))
	width, height := w.IconSize()
	assert.Equal(t, 2, width)
	assert.Equal(t, 2, height)
}

func TestMultilineCycles(t *testing.T) {
	ctx, rec, _ := newContext()
	m := NewMultiline("calendar")
	require.NoError(t, m.SetSize(SizeLong))
	require.NoError(t, m.SetCustomTextConfig(0, 0, render.White, AlignLeft, font.Small()))

	m.UpdateText(ctx, "one\ntwo\nsix", false)
	assert.Equal(t, "one", m.Text())
	assert.Equal(t, 3, m.Lines())

	ctx.Now = epoch.Add(4 * time.Second)
	m.CheckUpdate(ctx)
	assert.Equal(t, 0, m.Line())

	for i, want := range []string{"two", "six", "one"} {
		ctx.Now = epoch.Add(time.Duration(i+1) * RefreshDelay)
		m.CheckUpdate(ctx)
		assert.Equal(t, want, m.Text())
	}

	rec.Reset()
	m.UpdateText(ctx, "new", false)
	assert.Equal(t, 0, m.Line())
	assert.Equal(t, "new", rec.Glyphs())
}

func TestTransforms(t *testing.T) {
	assert.Equal(t, "21", TempInt([]byte("21.7")))
	assert.Equal(t, "-3", TempInt([]byte("-3.5")))
	assert.Equal(t, "0", TempInt([]byte("n/a")))
	assert.Equal(t, "72°", TempC2F([]byte("22.5")))
	assert.Equal(t, "32°", TempC2F([]byte("unavailable")))
	assert.Equal(t, "12", FloatStrLen([]byte("12.34")))
	assert.Equal(t, "3.5", FloatStrLen([]byte("3.46")))
	assert.Equal(t, "0.0", FloatStrLen([]byte("0")))
	assert.Equal(t, 12.0, leadingFloat("12°"))
}

func newRNG() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func newWeather(t *testing.T) *WeatherWidget {
	t.Helper()
	w := NewWeather("weather", newRNG())
	require.NoError(t, w.SetSize(SizeLarge))
	w.SetOrigin(64, 0)
	w.SetIconSize(32, 25)
	require.NoError(t, w.SetCustomTextConfig(32, 26, render.White, AlignCenter, nil))
	return w
}

func TestWeatherAnimationGatedByFramePeriod(t *testing.T) {
	ctx, rec, _ := newContext()
	w := newWeather(t)
	icons := &assets.Resolver{}

	w.UpdateWeather(ctx, weather.Rainy, icons)
	require.True(t, w.Animated())
	assert.Equal(t, "weather/rainy", w.IconKey())

	rec.Reset()
	ctx.Now = epoch.Add(100 * time.Millisecond)
	w.CheckUpdate(ctx)
	assert.Zero(t, rec.Len())

	ctx.Now = epoch.Add(200 * time.Millisecond)
	w.CheckUpdate(ctx)
	assert.Equal(t, 32*25, rec.Len())

	rec.Reset()
	w.SetActive(false)
	ctx.Now = epoch.Add(time.Second)
	w.CheckUpdate(ctx)
	assert.Zero(t, rec.Len())
}

func TestWeatherStaticConditions(t *testing.T) {
	ctx, _, _ := newContext()
	w := newWeather(t)
	icons := &assets.Resolver{}

	w.UpdateCondition(ctx, "sunny", false, icons)
	assert.Equal(t, weather.ClearNight, w.Weather())
	assert.False(t, w.Animated())

	w.UpdateCondition(ctx, "lightning-rainy", true, icons)
	assert.Equal(t, weather.Stormy, w.Weather())
	assert.True(t, w.Animated())
}

func TestManager(t *testing.T) {
	ctx, _, _ := newContext()
	m := NewManager()
	a := newSmall(t)
	b := NewMultiline("calendar")
	require.NoError(t, b.SetSize(SizeLong))
	require.NoError(t, b.SetCustomTextConfig(0, 0, render.White, AlignLeft, nil))
	m.Add(a)
	m.Add(b)

	assert.Equal(t, 2, m.Len())
	assert.Same(t, a, m.At(0).Base())
	e, ok := m.ByName("calendar")
	require.True(t, ok)
	assert.Same(t, b.Widget, e.Base())
	_, ok = m.ByName("missing")
	assert.False(t, ok)

	a.UpdateText(ctx, "72", true)
	b.UpdateText(ctx, "x\ny", false)

	ctx.Now = epoch.Add(RefreshDelay)
	m.Tick(ctx, false)
	assert.False(t, a.Boosted())
	assert.Equal(t, "y", b.Text())

	m.SetTextColor(render.TextNightColor)
	infos := m.Infos()
	require.Len(t, infos, 2)
	assert.Equal(t, "temp", infos[0].Name)
	assert.Equal(t, "72", infos[0].Text)
	assert.Equal(t, 62, infos[1].Width)
}
