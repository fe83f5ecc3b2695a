package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SupportShape is one support on a load map
type SupportShape struct {
	Label   string
	Outline orb.Ring

	// Tributary region of the support
	Region orb.MultiPolygon

	// Where the label is placed, usually the support centroid
	LabelAt orb.Point

	// Value printed under the label (combined load)
	Value float64
}

// LoadMapData holds data for drawing a tributary load map
type LoadMapData struct {
	Title    string
	Slab     orb.Ring
	Openings []orb.Ring
	Supports []SupportShape

	// Unit of SupportShape.Value (default: kN)
	Unit string
}

const regionMarks = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// regionMark returns the character used to shade the i-th region
func regionMark(i int) rune {
	if i < len(regionMarks) {
		return rune(regionMarks[i])
	}
	return '?'
}

// DrawASCIILoadMap creates an ASCII plan of the slab with each cell shaded
// by the support it drains to. widthChars is the map width in characters.
func DrawASCIILoadMap(data LoadMapData, widthChars int) string {
	var sb strings.Builder

	if len(data.Slab) < 3 {
		return ""
	}
	if widthChars < 10 {
		widthChars = 10
	}

	b := data.Slab.Bound()
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if dx <= 0 || dy <= 0 {
		return ""
	}

	// Characters are roughly twice as tall as they are wide
	heightChars := int(math.Round(float64(widthChars) * dy / dx / 2))
	heightChars = min(max(heightChars, 4), 60)

	cellW := dx / float64(widthChars)
	cellH := dy / float64(heightChars)

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for row := 0; row < heightChars; row++ {
		y := b.Max[1] - (float64(row)+0.5)*cellH
		sb.WriteString("  │")
		for col := 0; col < widthChars; col++ {
			x := b.Min[0] + (float64(col)+0.5)*cellW
			sb.WriteRune(cellMark(data, orb.Point{x, y}))
		}
		sb.WriteString("│\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = Support\n")
	for i, s := range data.Supports {
		sb.WriteString(fmt.Sprintf("  %c = %s\n", regionMark(i), strings.ReplaceAll(supportLabel(s, data.Unit), "\n", "  ")))
	}

	return sb.String()
}

func cellMark(data LoadMapData, pt orb.Point) rune {
	if !planar.RingContains(data.Slab, pt) {
		return ' '
	}
	for _, o := range data.Openings {
		if planar.RingContains(o, pt) {
			return ' '
		}
	}
	for _, s := range data.Supports {
		if len(s.Outline) >= 3 && planar.RingContains(s.Outline, pt) {
			return '█'
		}
	}
	for i, s := range data.Supports {
		if planar.MultiPolygonContains(s.Region, pt) {
			return regionMark(i)
		}
	}
	return '·'
}

// DrawSummaryBox creates a summary box with key results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
