package animation

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/girder/internal/weather"
)

var rainHex = []string{
	"001ffb", "002ea8", "0032b9", "0043b6", "091eaa",
	"0b27ab", "0f289b", "1034c9", "1243be", "133fcd",
	"1374fc", "142b96", "14399b", "143aaa", "1443b4",
	"1548c3", "1551d1", "1756d1", "184d87", "1853e4",
	"1a71da", "2152b2", "2370ce", "2377e0", "2383c6",
	"253aae", "2978e4", "3275cc", "367bb7",
}

var snowHex = []string{
	"b9b9b9", "444444", "626262", "393939", "484848",
	"cdcdcd", "9e9e9e", "919191", "858585", "a0a0a0",
	"d6d6d6", "6f6f6f", "6d6d6d", "565656",
}

var (
	rainPalette = mustPalette(rainHex)
	snowPalette = mustPalette(snowHex)
	mixPalette  = append(append([]color.RGBA{}, rainPalette...), snowPalette...)
)

// ParsePalette converts hex color strings with or without a leading '#'.
func ParsePalette(hex []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(hex))
	for _, h := range hex {
		if len(h) > 0 && h[0] != '#' {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		r, g, b := c.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 0xFF})
	}
	return out, nil
}

func mustPalette(hex []string) []color.RGBA {
	p, err := ParsePalette(hex)
	if err != nil {
		panic(err)
	}
	return p
}

// PaletteFor returns the drop colors used for a weather category.
func PaletteFor(t weather.Type) []color.RGBA {
	switch t {
	case weather.Snowy:
		return snowPalette
	case weather.RainySnowy:
		return mixPalette
	default:
		return rainPalette
	}
}
