package widget

import (
	"fmt"
	"image/color"

	"github.com/rook-computer/girder/internal/assets"
	"github.com/rook-computer/girder/internal/render"
)

// SetIconOrigin places the icon relative to the widget origin.
func (w *Widget) SetIconOrigin(x, y int) {
	w.icon.x, w.icon.y = x, y
}

// SetIconSize sets the icon dimensions used by UpdateIcon.
func (w *Widget) SetIconSize(width, height int) {
	w.icon.width, w.icon.height = width, height
}

// SetIconImage replaces the icon pixels. rgb holds three bytes per pixel
// and must match the given size.
func (w *Widget) SetIconImage(width, height int, rgb []byte) error {
	if len(rgb) != 3*width*height {
		return fmt.Errorf("%s: icon buffer is %d bytes, want %d for %dx%d",
			w.Name, len(rgb), 3*width*height, width, height)
	}
	w.icon.width, w.icon.height = width, height
	w.icon.rgb = rgb
	return nil
}

// IconRGB returns the icon buffer. Derived widgets draw into it.
func (w *Widget) IconRGB() []byte { return w.icon.rgb }

// IconSize returns the configured icon dimensions.
func (w *Widget) IconSize() (int, int) { return w.icon.width, w.icon.height }

// UpdateIcon resolves key at the configured icon size and redraws.
// Icon changes are never boosted.
func (w *Widget) UpdateIcon(ctx *RenderContext, key string, icons assets.IconResolver) {
	if w.icon.width <= 0 || w.icon.height <= 0 {
		ctx.log().Errorf(w.component(), "icon %q set before the icon size was configured", key)
		return
	}
	icon, err := icons.Resolve(key, w.icon.width, w.icon.height)
	if err != nil {
		ctx.log().Errorf(w.component(), "resolving icon %q: %v", key, err)
		return
	}
	if err := w.SetIconImage(icon.Width, icon.Height, icon.RGB); err != nil {
		ctx.log().Errorf(w.component(), "%v", err)
		return
	}
	w.icon.key = key
	w.Render(ctx)
}

func (w *Widget) renderIcon(ctx *RenderContext) {
	if !w.active || !w.icon.ready() {
		return
	}
	ox, oy := w.x+w.icon.x, w.y+w.icon.y
	for py := 0; py < w.icon.height; py++ {
		for px := 0; px < w.icon.width; px++ {
			i := 3 * (py*w.icon.width + px)
			c := color.RGBA{R: w.icon.rgb[i], G: w.icon.rgb[i+1], B: w.icon.rgb[i+2], A: 0xFF}
			ctx.Sink.SetPixel(ox+px, oy+py, render.Brighten(c, w.icon.boost))
		}
	}
}
