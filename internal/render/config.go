package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	Black     = color.RGBA{A: 0xFF}
	DarkGrey  = color.RGBA{R: 16, G: 16, B: 16, A: 0xFF}
	Grey      = color.RGBA{R: 64, G: 64, B: 64, A: 0xFF}
	LightGrey = color.RGBA{R: 128, G: 128, B: 128, A: 0xFF}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 0xFF}

	DateColor      = color.RGBA{R: 96, G: 128, B: 148, A: 0xFF}
	TimeColor      = color.RGBA{R: 248, G: 96, B: 8, A: 0xFF}
	TextDayColor   = color.RGBA{R: 112, G: 148, B: 176, A: 0xFF}
	TextNightColor = color.RGBA{R: 176, G: 148, B: 112, A: 0xFF}
	TextDarkColor  = color.RGBA{R: 56, G: 74, B: 88, A: 0xFF}
	AlertColor     = color.RGBA{R: 248, G: 48, B: 8, A: 0xFF}

	// Logical matrix size; scaled to the output device.
	CanvasWidth  = 128
	CanvasHeight = 64
)
