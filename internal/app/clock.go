package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/rook-computer/girder/internal/font"
	"github.com/rook-computer/girder/internal/render"
	"github.com/rook-computer/girder/internal/widget"
)

// Clock draws weekday, date and time in a fixed column. It only redraws
// when the minute changes.
type Clock struct {
	X, Width                 int
	Height                   int
	DayRow, DateRow, TimeRow int
	Font                     *font.Font
	DateColor                color.RGBA
	TimeColor                color.RGBA

	last time.Time
}

func NewClock(x int, f *font.Font) *Clock {
	return &Clock{
		X:         x,
		Width:     32,
		Height:    32,
		DayRow:    2,
		DateRow:   12,
		TimeRow:   22,
		Font:      f,
		DateColor: render.DateColor,
		TimeColor: render.TimeColor,
	}
}

// Render draws the clock if the minute changed or force is set. It
// reports whether anything was drawn.
func (c *Clock) Render(ctx *widget.RenderContext, force bool) bool {
	now := ctx.Now.Truncate(time.Minute)
	if !force && now.Equal(c.last) {
		return false
	}
	c.last = now

	ctx.Sink.FillRect(c.X, 0, c.Width, c.Height, render.Black)

	day := now.Weekday().String()[:3]
	offset := (c.Width - len(day)*c.Font.Width) / 2
	font.Draw(ctx.Sink, c.X+offset, c.DayRow, c.DateColor, day, c.Font, false, ctx.Logger)

	date := fmt.Sprintf("%d/%d", int(now.Month()), now.Day())
	font.Draw(ctx.Sink, c.X+c.center(date), c.DateRow, c.DateColor, date, c.Font, true, ctx.Logger)

	hm := fmt.Sprintf("%d:%02d", now.Hour(), now.Minute())
	font.Draw(ctx.Sink, c.X+c.center(hm), c.TimeRow, c.TimeColor, hm, c.Font, true, ctx.Logger)
	return true
}

func (c *Clock) center(text string) int {
	return c.Width/2 - font.RenderLength(text, c.Font)/2
}
