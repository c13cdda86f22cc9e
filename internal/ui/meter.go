package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// meterRange is the deviation (cents) at either end of the meter.
const meterRange = 50.0

// Meter renders a horizontal cents meter. The needle sits at the
// measured deviation, clamped to ±50 cents, and is colored by how far
// it is from the target: green within tolerance, yellow within three
// times tolerance, red beyond.
func Meter(cents, tolerance float64, width int) string {
	if width < 11 {
		width = 11
	}
	if width%2 == 0 {
		width++
	}

	clamped := math.Max(-meterRange, math.Min(meterRange, cents))
	center := width / 2
	pos := center + int(math.Round(clamped/meterRange*float64(center)))

	var b strings.Builder
	b.WriteString(DimStyle.Render("["))
	for i := 0; i < width; i++ {
		switch {
		case i == pos:
			b.WriteString(needleStyle(cents, tolerance).Render("█"))
		case i == center:
			b.WriteString(DividerStyle.Render("┼"))
		default:
			b.WriteString(DividerStyle.Render("─"))
		}
	}
	b.WriteString(DimStyle.Render("]"))
	return b.String()
}

// MeterLabels renders the flat/sharp caption line under a meter of the
// same width.
func MeterLabels(width int) string {
	if width < 11 {
		width = 11
	}
	if width%2 == 0 {
		width++
	}
	left := fmt.Sprintf("-%.0f¢", meterRange)
	right := fmt.Sprintf("+%.0f¢", meterRange)
	pad := width + 2 - len(left) - len(right) - 1
	if pad < 1 {
		pad = 1
	}
	half := pad / 2
	line := left + strings.Repeat(" ", half) + "0" + strings.Repeat(" ", pad-half) + right
	return DimStyle.Render(line)
}

// Deviation formats a cents value with its sign, colored like the
// meter needle.
func Deviation(cents, tolerance float64) string {
	return needleStyle(cents, tolerance).Render(fmt.Sprintf("%+.1f¢", cents))
}

func needleStyle(cents, tolerance float64) lipgloss.Style {
	abs := math.Abs(cents)
	switch {
	case abs <= tolerance:
		return InTuneStyle
	case abs <= 3*tolerance:
		return WarningStyle
	default:
		return OffKeyStyle
	}
}
