package ui

import (
	"fmt"
	"strings"
)

// ProgressBar renders a filled bar with a done/total caption.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	if width < 4 {
		width = 4
	}

	filled := done * width / total
	bar := SelectedStyle.Render(strings.Repeat("█", filled)) +
		DividerStyle.Render(strings.Repeat("░", width-filled))
	caption := DimStyle.Render(fmt.Sprintf(" %d/%d (%.0f%%)", done, total, float64(done)/float64(total)*100))
	return bar + caption
}

// StepDots renders the per-note step position, e.g. "● ● ○ ○" for step
// 2 of 4.
func StepDots(step, total int) string {
	parts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if i <= step {
			parts = append(parts, InTuneStyle.Render("●"))
		} else {
			parts = append(parts, DividerStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ")
}
