package font

import (
	"fmt"
	"testing"

	"github.com/rook-computer/girder/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type warnLog struct{ warnings []string }

func (l *warnLog) Warnf(component, format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestRenderLengthIsSumOfWidthsMinusOne(t *testing.T) {
	texts := []string{"72°", "0.0", "12:45", "10/31", "Hello", "jIl1", "a", "-- ", "Wed"}
	for _, f := range []*Font{Default(), Small(), Large(), Clock()} {
		for _, text := range texts {
			sum := 0
			for _, r := range text {
				sum += Width(r, f)
			}
			assert.Equal(t, sum-1, RenderLength(text, f), "%s %q", f.Name, text)
		}
	}
	assert.Equal(t, 0, RenderLength("", Default()))
}

func TestDrawDegreeScenario(t *testing.T) {
	rec := &render.Recorder{}
	f := Default()
	Draw(rec, 0, 0, render.White, "72°", f, true, nil)

	ops := rec.Ops()
	require.Len(t, ops, 6)

	assert.Equal(t, "glyph", ops[0].Kind)
	assert.Equal(t, '7', ops[0].Rune)
	assert.Equal(t, 0, ops[0].X)
	assert.Equal(t, 8, ops[0].Y)

	assert.Equal(t, '2', ops[1].Rune)
	assert.Equal(t, 6, ops[1].X)

	var block [][2]int
	for _, op := range ops[2:] {
		assert.Equal(t, "pixel", op.Kind)
		block = append(block, [2]int{op.X, op.Y})
	}
	assert.ElementsMatch(t, [][2]int{{12, 2}, {12, 1}, {13, 2}, {13, 1}}, block)

	// the degree glyph adds nothing to the measured length
	assert.Equal(t, RenderLength("72", f), RenderLength("72°", f))
	assert.Equal(t, 11, RenderLength("72°", f))
}

func TestDrawDecimalPath(t *testing.T) {
	rec := &render.Recorder{}
	f := Default()
	Draw(rec, 10, 0, render.White, "1.5", f, true, nil)

	ops := rec.Ops()
	require.Len(t, ops, 4)
	// leading narrow digit is nudged one column and shifted by its offset
	assert.Equal(t, '1', ops[0].Rune)
	assert.Equal(t, 10+1-Offset('1', f), ops[0].X)

	cx := 11 + Advance('1', f)
	assert.Equal(t, render.Op{Kind: "pixel", X: cx, Y: 7, Color: render.White}, ops[1])
	assert.Equal(t, render.Op{Kind: "pixel", X: cx, Y: 6, Color: render.White}, ops[2])
	assert.Equal(t, '5', ops[3].Rune)
	assert.Equal(t, cx+2, ops[3].X)
}

func TestDrawDecimalNoNudgeForWideDigit(t *testing.T) {
	rec := &render.Recorder{}
	Draw(rec, 0, 0, render.White, "7.2", Default(), true, nil)
	ops := rec.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, 0, ops[0].X)
}

func TestDrawWarnsOnUnparsedDecimal(t *testing.T) {
	rec := &render.Recorder{}
	log := &warnLog{}
	Draw(rec, 0, 0, render.White, "12.5", Default(), true, log)
	assert.Len(t, log.warnings, 1)
	// generic path still renders every glyph
	assert.Equal(t, "125", rec.Glyphs())

	log.warnings = nil
	Draw(rec, 0, 0, render.White, "7.2", Default(), true, log)
	assert.Empty(t, log.warnings)
}

func TestDrawFixedPitch(t *testing.T) {
	rec := &render.Recorder{}
	f := Default()
	Draw(rec, 2, 3, render.White, "ab", f, false, nil)
	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, 2, ops[0].X)
	assert.Equal(t, 8, ops[1].X)
	assert.Equal(t, 11, ops[1].Y)
}

func TestDrawCustomGlyphs(t *testing.T) {
	rec := &render.Recorder{}
	Draw(rec, 0, 0, render.White, "1:2", Default(), true, nil)
	pixels := 0
	for _, op := range rec.Ops() {
		if op.Kind == "pixel" {
			pixels++
		}
	}
	assert.Equal(t, 4, pixels)
	assert.Equal(t, "12", rec.Glyphs())
}

func TestDrawOnCanvasLightsPixels(t *testing.T) {
	c := render.NewCanvas(32, 16)
	Draw(c, 0, 0, render.White, "8", Default(), true, nil)
	lit := 0
	img := c.Snapshot()
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			if img.RGBAAt(x, y) == render.White {
				lit++
			}
		}
	}
	// '8' in the 5x7 face has 17 lit pixels
	assert.Equal(t, 17, lit)
}
