package widget

import (
	"strings"
	"time"
)

// LineSeparator splits multiline text.
const LineSeparator = "\n"

// MultilineWidget shows one line of a multi-line text at a time and
// advances to the next line every Period.
type MultilineWidget struct {
	*Widget

	Period time.Duration

	full       string
	lines      []string
	line       int
	lastSwitch time.Time
}

func NewMultiline(name string) *MultilineWidget {
	return &MultilineWidget{Widget: New(name), Period: RefreshDelay}
}

// UpdateText stores the full text and shows its first line.
func (m *MultilineWidget) UpdateText(ctx *RenderContext, text string, brighten bool) {
	if text == m.full {
		return
	}
	m.full = text
	m.lines = strings.Split(text, LineSeparator)
	m.line = 0
	m.lastSwitch = ctx.Now
	m.Widget.UpdateText(ctx, m.lines[0], brighten)
}

// UpdateTextWith converts payload with fn before updating.
func (m *MultilineWidget) UpdateTextWith(ctx *RenderContext, payload []byte, fn Transform, brighten bool) {
	m.UpdateText(ctx, fn(payload), brighten)
}

// Line returns the index of the line on display.
func (m *MultilineWidget) Line() int { return m.line }

// Lines returns the number of lines in the text.
func (m *MultilineWidget) Lines() int { return len(m.lines) }

// CheckUpdate advances to the next line once Period has passed.
func (m *MultilineWidget) CheckUpdate(ctx *RenderContext) {
	if len(m.lines) < 2 || ctx.Now.Sub(m.lastSwitch) < m.Period {
		return
	}
	m.lastSwitch = ctx.Now
	m.line = (m.line + 1) % len(m.lines)
	m.Widget.UpdateText(ctx, m.lines[m.line], false)
}
