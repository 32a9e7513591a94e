// Package export renders recorded temperature series as standalone SVG
// documents.
package export

import (
	"fmt"
	"strings"
)

// SeriesToSVG draws one temperature series as an SVG polyline, day on the
// horizontal axis and temperature on the vertical, with a tenth of the data
// range as padding on each side.
func SeriesToSVG(days, temperatures []float64, width, height int, strokeColor string) string {
	if len(days) < 2 || len(days) != len(temperatures) {
		return ""
	}

	minX, maxX := days[0], days[0]
	minY, maxY := temperatures[0], temperatures[0]
	for i := range days {
		if days[i] < minX {
			minX = days[i]
		}
		if days[i] > maxX {
			maxX = days[i]
		}
		if temperatures[i] < minY {
			minY = temperatures[i]
		}
		if temperatures[i] > maxY {
			maxY = temperatures[i]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range days {
		x := (days[i] - minX) / rangeX * float64(width)
		y := float64(height) - (temperatures[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
