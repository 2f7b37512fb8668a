// Package layout places fixed-size widget slots on the canvas.
package layout

import "image"

// Grid places fixed-size widget slots in columns and rows.
type Grid struct {
	Origin      image.Point
	ColumnPitch int
	RowPitch    int
}

// Cell returns the top-left corner of slot (col, row).
func (g Grid) Cell(col, row int) image.Point {
	return image.Pt(g.Origin.X+col*g.ColumnPitch, g.Origin.Y+row*g.RowPitch)
}
