package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// TrajectorySVG draws the path (x[i], y[i]) scaled into a width×height
// viewport with a 10% margin. It returns "" for fewer than two points.
func TrajectorySVG(x, y []float64, width, height int, strokeColor string) string {
	n := min(len(x), len(y))
	if n < 2 {
		return ""
	}
	x, y = x[:n], y[:n]

	minX, maxX := floats.Min(x), floats.Max(x)
	minY, maxY := floats.Min(y), floats.Max(y)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i := range x {
		px := (x[i] - minX) / rangeX * float64(width)
		py := float64(height) - (y[i]-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
