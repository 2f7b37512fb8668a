// Package font holds the bitmap fonts used on the matrix together with
// the per-glyph metrics that make variable-width text look even.
package font

import (
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Font names select a metrics table.
const (
	NameDefault = "default"
	NameLarge   = "large"
	NameSmall   = "small"
	NameClock   = "clock"
)

const defaultCellWidth = 5

// Font is a loaded bitmap face with its nominal cell size. Fonts are
// created once at startup and shared by pointer.
type Font struct {
	Name    string
	Face    xfont.Face
	Width   int
	Height  int
	Kerning int
}

// metrics returns the name of the metrics table used for f.
func (f *Font) metrics() string {
	if f.Name == NameClock {
		return NameDefault
	}
	return f.Name
}

// Default returns the compiled-in default 5x8 font.
func Default() *Font {
	return &Font{Name: NameDefault, Face: Face5x7, Width: 5, Height: 8}
}

// Small returns the compiled-in small 5x7 font.
func Small() *Font {
	return &Font{Name: NameSmall, Face: Face5x7, Width: 5, Height: 7}
}

// Large returns the 7x9 large font.
func Large() *Font {
	return &Font{Name: NameLarge, Face: basicfont.Face7x13, Width: 7, Height: 9}
}

// Clock returns the clock font. It shares the default metrics.
func Clock() *Font {
	return &Font{Name: NameClock, Face: Face5x7, Width: 5, Height: 8}
}

// ByName returns the builtin font called name, or nil.
func ByName(name string) *Font {
	switch name {
	case NameDefault:
		return Default()
	case NameSmall:
		return Small()
	case NameLarge:
		return Large()
	case NameClock:
		return Clock()
	}
	return nil
}

// Set is the collection of fonts used by the dashboard.
type Set struct {
	Default *Font
	Small   *Font
	Large   *Font
	Clock   *Font
}

func Builtin() Set {
	return Set{Default: Default(), Small: Small(), Large: Large(), Clock: Clock()}
}

// LoadFace reads an OTF/TTF file and returns a face at the given size.
// Parsing is attempted with opentype first and truetype second.
func LoadFace(path string, size float64) (xfont.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read font %s", path)
	}
	if size <= 0 {
		size = 8
	}
	otf, oerr := opentype.Parse(data)
	if oerr == nil {
		face, ferr := opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: xfont.HintingFull})
		if ferr == nil {
			return face, nil
		}
		oerr = ferr
	}
	tt, terr := truetype.Parse(data)
	if terr != nil {
		return nil, errors.Wrapf(oerr, "parse font %s (truetype: %v)", path, terr)
	}
	return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: xfont.HintingFull}), nil
}
