package ui

import (
	"strings"
	"testing"
)

func TestMeterContainsNeedleAndCenter(t *testing.T) {
	out := Meter(0, 5, 41)
	if !strings.Contains(out, "█") {
		t.Error("meter missing needle")
	}
	if !strings.Contains(out, "[") || !strings.Contains(out, "]") {
		t.Error("meter missing frame")
	}
	// Dead center replaces the center tick with the needle.
	if strings.Contains(out, "┼") {
		t.Error("needle at zero should cover the center tick")
	}
}

func TestMeterClampsExtremes(t *testing.T) {
	low := Meter(-500, 5, 21)
	high := Meter(500, 5, 21)
	if low == high {
		t.Error("opposite extremes should render differently")
	}
	for _, out := range []string{low, high} {
		if !strings.Contains(out, "█") {
			t.Error("clamped meter missing needle")
		}
	}
}

func TestDeviationFormatsSign(t *testing.T) {
	if got := Deviation(3.25, 5); !strings.Contains(got, "+3.2¢") {
		t.Errorf("Deviation(3.25) = %q", got)
	}
	if got := Deviation(-12.5, 5); !strings.Contains(got, "-12.5¢") {
		t.Errorf("Deviation(-12.5) = %q", got)
	}
}

func TestProgressBarCaption(t *testing.T) {
	out := ProgressBar(42, 88, 20)
	if !strings.Contains(out, "42/88") {
		t.Errorf("progress = %q", out)
	}
	if !strings.Contains(out, "48%") {
		t.Errorf("progress percent missing: %q", out)
	}
}

func TestProgressBarBounds(t *testing.T) {
	if out := ProgressBar(100, 88, 20); !strings.Contains(out, "88/88") {
		t.Errorf("overshoot should clamp: %q", out)
	}
	if out := ProgressBar(-3, 88, 20); !strings.Contains(out, "0/88") {
		t.Errorf("undershoot should clamp: %q", out)
	}
}

func TestStepDots(t *testing.T) {
	out := StepDots(2, 4)
	if strings.Count(out, "●") != 2 || strings.Count(out, "○") != 2 {
		t.Errorf("dots = %q", out)
	}
}
