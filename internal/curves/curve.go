// Package curves turns sweep and radar parameters into plottable result curves.
package curves

import (
	"fmt"
)

// Curve is an ordered set of (x, y) samples with plot labels.
// X and Y are always the same length.
type Curve struct {
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
}

// Point is a single curve sample
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewCurve builds a curve, rejecting mismatched axes
func NewCurve(title, xLabel, yLabel string, x, y []float64) (*Curve, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("curve %q: x has %d samples but y has %d", title, len(x), len(y))
	}
	return &Curve{
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		X:      x,
		Y:      y,
	}, nil
}

// Len returns the number of samples
func (c *Curve) Len() int {
	return len(c.X)
}

// Points returns the samples as (x, y) pairs
func (c *Curve) Points() []Point {
	pts := make([]Point, len(c.X))
	for i := range c.X {
		pts[i] = Point{X: c.X[i], Y: c.Y[i]}
	}
	return pts
}

// Rows returns the curve as string records with a header row, for CSV output
func (c *Curve) Rows() [][]string {
	rows := make([][]string, 0, len(c.X)+1)
	rows = append(rows, []string{c.XLabel, c.YLabel})
	for i := range c.X {
		rows = append(rows, []string{
			fmt.Sprintf("%g", c.X[i]),
			fmt.Sprintf("%g", c.Y[i]),
		})
	}
	return rows
}
