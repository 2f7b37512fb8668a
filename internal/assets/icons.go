package assets

import (
	"image"
	"image/color"
)

// Icon is a decoded icon as a flat RGB buffer, three bytes per pixel.
type Icon struct {
	Width  int
	Height int
	RGB    []byte
}

// Image returns the icon as an RGBA image.
func (i Icon) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, i.Width, i.Height))
	for p := 0; p < i.Width*i.Height && 3*p+2 < len(i.RGB); p++ {
		img.Pix[4*p] = i.RGB[3*p]
		img.Pix[4*p+1] = i.RGB[3*p+1]
		img.Pix[4*p+2] = i.RGB[3*p+2]
		img.Pix[4*p+3] = 0xFF
	}
	return img
}

// FromImage flattens img into an Icon.
func FromImage(img image.Image) Icon {
	b := img.Bounds()
	icon := Icon{Width: b.Dx(), Height: b.Dy(), RGB: make([]byte, 0, 3*b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			icon.RGB = append(icon.RGB, c.R, c.G, c.B)
		}
	}
	return icon
}

// Keys of the compiled-in icons used outside the weather table.
const (
	IconDefault        = "default"
	IconTemperature    = "temperature"
	IconDewPoint       = "dewpoint"
	IconAirQuality     = "pm25"
	IconHome           = "home"
	IconWind           = "wind"
	IconRain           = "rain"
	IconCalendar       = "calendar"
	IconThermoHeat     = "thermostat/heat"
	IconThermoCool     = "thermostat/cool"
	IconThermoModeHeat = "thermostat/mode-heat"
	IconThermoModeCool = "thermostat/mode-cool"
	IconThermoFan      = "thermostat/fan"
	IconLightningBolt  = "weather/lightning-bolt"
)

var artPalette = map[byte]color.RGBA{
	'.': {A: 0xFF},
	'W': {R: 200, G: 200, B: 200, A: 0xFF},
	'G': {R: 110, G: 110, B: 120, A: 0xFF},
	'g': {R: 60, G: 60, B: 66, A: 0xFF},
	'Y': {R: 250, G: 200, B: 20, A: 0xFF},
	'O': {R: 240, G: 120, B: 10, A: 0xFF},
	'R': {R: 220, G: 30, B: 20, A: 0xFF},
	'B': {R: 20, G: 70, B: 220, A: 0xFF},
	'C': {R: 60, G: 190, B: 230, A: 0xFF},
	'M': {R: 230, G: 220, B: 150, A: 0xFF},
	'N': {R: 40, G: 180, B: 60, A: 0xFF},
}

var cloudTop = []string{
	"................",
	"......GGGG......",
	".....GWWWWG.....",
	"..GGGWWWWWWGG...",
	".GWWWWWWWWWWWG..",
	"GWWWWWWWWWWWWWG.",
	"GWWWWWWWWWWWWWWG",
	".GGGGGGGGGGGGGG.",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
}

var art = map[string][]string{
	"weather/sunny": {
		"................",
		".......YY.......",
		"..Y....YY....Y..",
		"...Y........Y...",
		"......OOOO......",
		".....OYYYYO.....",
		"....OYYYYYYO....",
		".YY.OYYYYYYO.YY.",
		".YY.OYYYYYYO.YY.",
		"....OYYYYYYO....",
		".....OYYYYO.....",
		"......OOOO......",
		"...Y........Y...",
		"..Y....YY....Y..",
		".......YY.......",
		"................",
	},
	"weather/partlycloudy": {
		"................",
		"..........Y.....",
		".......Y..Y..Y..",
		"........OOOO....",
		".......OYYYYO...",
		"....GGGGYYYYOYY.",
		"...GWWWWGYYYO...",
		"..GWWWWWWGOO....",
		".GWWWWWWWWGGG...",
		"GWWWWWWWWWWWWG..",
		"GWWWWWWWWWWWWWG.",
		".GGGGGGGGGGGGG..",
		"................",
		"................",
		"................",
		"................",
	},
	"weather/partlycloudy-night": {
		"................",
		"..........MMM...",
		".........MM.....",
		"........MM......",
		"........MM......",
		"....GGGGMM...M..",
		"...GWWWWGMMMM...",
		"..GWWWWWWG......",
		".GWWWWWWWWGGG...",
		"GWWWWWWWWWWWWG..",
		"GWWWWWWWWWWWWWG.",
		".GGGGGGGGGGGGG..",
		"................",
		"................",
		"................",
		"................",
	},
	"weather/cloudy": {
		"................",
		"................",
		"................",
		"........gggg....",
		".......gGGGGg...",
		"....GGGGGGGGGg..",
		"...GWWWWGGGGGGg.",
		"..GWWWWWWGGGGGGg",
		".GWWWWWWWWGGGGg.",
		"GWWWWWWWWWWWWG..",
		"GWWWWWWWWWWWWWG.",
		".GGGGGGGGGGGGG..",
		"................",
		"................",
		"................",
		"................",
	},
	"weather/rainy":       cloudTop,
	"weather/snowy":       cloudTop,
	"weather/snowy-rainy": cloudTop,
	"weather/fog": {
		"................",
		"................",
		"................",
		"..GGGGGGGGGGG...",
		"................",
		"....GGGGGGGGGGG.",
		"................",
		".GGGGGGGGGGGG...",
		"................",
		"...GGGGGGGGGGGG.",
		"................",
		"..GGGGGGGGGG....",
		"................",
		"................",
		"................",
		"................",
	},
	"weather/clear-night": {
		"................",
		"..W.........W...",
		"......MMM.......",
		"....MMM.........",
		"...MMM.......W..",
		"...MM...........",
		"..MMM...........",
		"..MMM...........",
		"..MMM...........",
		"...MM.......W...",
		"...MMM......MM..",
		"....MMMM..MMM...",
		"......MMMMM.....",
		"................",
		".W..........W...",
		"................",
	},
	"weather/exceptional": {
		"................",
		".......RR.......",
		"......RRRR......",
		"......RWWR......",
		".....RRWWRR.....",
		".....RRWWRR.....",
		"....RRRWWRRR....",
		"....RRRWWRRR....",
		"...RRRRWWRRRR...",
		"...RRRRRRRRRR...",
		"..RRRRRWWRRRRR..",
		"..RRRRRWWRRRRR..",
		".RRRRRRRRRRRRRR.",
		".RRRRRRRRRRRRRR.",
		"................",
		"................",
	},
	"weather/unknown": {
		"................",
		"................",
		".....WWWWWW.....",
		"....WW....WW....",
		"....WW....WW....",
		"..........WW....",
		".........WW.....",
		"........WW......",
		".......WW.......",
		".......WW.......",
		"................",
		".......WW.......",
		".......WW.......",
		"................",
		"................",
		"................",
	},
	IconLightningBolt: {
		"................",
		"................",
		"................",
		"................",
		"................",
		"................",
		"................",
		"........YY......",
		".......YY.......",
		"......YYYYY.....",
		"........YY......",
		".......YY.......",
		"......Y.........",
		"................",
		"................",
		"................",
	},
	IconTemperature: {
		"...WW...",
		"..W..W..",
		"..W.RW..",
		"..W.RW..",
		"..WRRW..",
		".WRRRRW.",
		".WRRRRW.",
		"..WWWW..",
	},
	IconDewPoint: {
		"...B....",
		"...B....",
		"..BBB...",
		"..BBB...",
		".BBCBB..",
		".BBCBB..",
		".BBBBB..",
		"..BBB...",
	},
	IconAirQuality: {
		"........",
		".g.G..g.",
		"...g.G..",
		".G..g..g",
		"..g..G..",
		".g.G..g.",
		"...g..G.",
		"........",
	},
	IconHome: {
		"...OO...",
		"..OOOO..",
		".OOOOOO.",
		"OOOOOOOO",
		".W....W.",
		".W.WW.W.",
		".W.WW.W.",
		".WWWWWW.",
	},
	IconWind: {
		"........",
		"CCCCCC..",
		"......C.",
		"CCCCCC..",
		"........",
		"CCCCC...",
		".....C..",
		"CCCC....",
	},
	IconRain: {
		"..B...B.",
		"..B...B.",
		"........",
		"B...B...",
		"B...B...",
		"......B.",
		"..B...B.",
		"..B.....",
	},
	IconCalendar: {
		".R....R.",
		"RRRRRRRR",
		"W......W",
		"W.W.W..W",
		"W......W",
		"W.W.W..W",
		"W......W",
		"WWWWWWWW",
	},
	IconThermoHeat: {
		"...R....",
		"...RR...",
		"..RRR.R.",
		"..RORRR.",
		".RROORR.",
		".ROOYOR.",
		".ROYYOR.",
		"..RRRR..",
	},
	IconThermoCool: {
		"...C....",
		".C.C.C..",
		"..CCC...",
		"CCCCCCC.",
		"..CCC...",
		".C.C.C..",
		"...C....",
		"........",
	},
	IconThermoModeHeat: {
		"........",
		"..OOOO..",
		".O....O.",
		".O.RR.O.",
		".O.RR.O.",
		".O....O.",
		"..OOOO..",
		"........",
	},
	IconThermoModeCool: {
		"........",
		"..CCCC..",
		".C....C.",
		".C.BB.C.",
		".C.BB.C.",
		".C....C.",
		"..CCCC..",
		"........",
	},
	IconThermoFan: {
		"...NN...",
		"...NN...",
		"N..NN..N",
		"NNNggNNN",
		"NNNggNNN",
		"N..NN..N",
		"...NN...",
		"...NN...",
	},
	IconDefault: {
		"WWWWWWWW",
		"W..WW..W",
		"W.W..W.W",
		"W....W.W",
		"W...W..W",
		"W......W",
		"W...W..W",
		"WWWWWWWW",
	},
}

func init() {
	art["weather/undefined"] = art["weather/unknown"]
}

// builtin renders the compiled-in icon called key at its natural size.
func builtin(key string) (*image.RGBA, bool) {
	rows, ok := art[key]
	if !ok || len(rows) == 0 {
		return nil, false
	}
	img := image.NewRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			c, ok := artPalette[row[x]]
			if !ok {
				c = artPalette['.']
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, true
}

// Builtin reports whether key names a compiled-in icon.
func Builtin(key string) bool {
	_, ok := art[key]
	return ok
}
