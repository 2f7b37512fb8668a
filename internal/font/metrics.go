package font

// Degree is the degree sign. It is drawn as a hand-placed 2x2 block and
// does not count toward measured text width.
const Degree = '°'

// Advance returns how far the cursor moves after drawing r, including the
// column of spacing between glyphs.
func Advance(r rune, f *Font) int {
	if r == Degree {
		return 3
	}
	return width(r, f)
}

// Width returns the measured width of r as used by RenderLength.
func Width(r rune, f *Font) int {
	if r == Degree {
		return 0
	}
	return width(r, f)
}

func width(r rune, f *Font) int {
	// default advance is the cell plus one column of spacing
	delta := 1

	switch r {
	case '.':
		return delta + 1
	case ':':
		return delta + 3
	case '/':
		return delta + 5
	}

	if f == nil {
		return defaultCellWidth + delta
	}

	switch f.metrics() {
	case NameDefault:
		delta -= narrowDefault[r]
	case NameSmall:
		delta -= smallNarrowing(r)
	}
	return f.Width + delta
}

// Offset returns how far the bitmap for r is shifted right inside its
// cell. Draw subtracts it from the pen position so glyphs sit flush left.
func Offset(r rune, f *Font) int {
	if f == nil {
		return 0
	}
	switch f.metrics() {
	case NameDefault:
		if r == '/' {
			return 1
		}
		if narrowDefault[r] > 0 {
			return 1
		}
	case NameSmall:
		if smallNarrowing(r) > 0 {
			return 1
		}
	}
	return 0
}

var narrowDefault = map[rune]int{
	'0': 1,
	'1': 2,
	'i': 2,
	'j': 1,
	'l': 2,
	'I': 2,
	'J': 1,
}

func smallNarrowing(r rune) int {
	switch {
	case r == '4':
		return 0
	case r == '1':
		return 2
	case r >= '0' && r <= '9':
		return 1
	case r == 'i' || r == 'l':
		return 2
	case r == 'm' || r == 'w':
		return 0
	case r >= 'a' && r <= 'z':
		return 1
	case r == 'A' || r == 'B' || r == 'J' || r == 'M' || r == 'O' || r == 'T':
		return 0
	case r >= 'W' && r <= 'Y':
		return 0
	case r == 'I':
		return 2
	case r >= 'A' && r <= 'Z':
		return 1
	}
	return 0
}
