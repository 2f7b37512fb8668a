package widget

import (
	"fmt"
	"strconv"
	"strings"
)

// Transform converts a raw payload into display text.
type Transform func(payload []byte) string

// TempInt shows a temperature as a whole number.
func TempInt(payload []byte) string {
	return strconv.Itoa(int(leadingFloat(string(payload))))
}

// TempC2F converts Celsius to whole Fahrenheit degrees.
func TempC2F(payload []byte) string {
	c := leadingFloat(string(payload))
	return fmt.Sprintf("%d°", int(c*9/5+32))
}

// FloatStrLen keeps a reading to three characters: one decimal below
// ten, a whole number otherwise.
func FloatStrLen(payload []byte) string {
	v := leadingFloat(string(payload))
	if v >= 10.0 {
		return strconv.Itoa(int(v))
	}
	return fmt.Sprintf("%1.1f", v)
}

// leadingFloat parses the longest numeric prefix of s. Anything
// unparseable reads as zero.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot := false, false
loop:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			break loop
		}
	}
	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
