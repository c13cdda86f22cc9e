package app

import (
	"fmt"
	"strings"

	"github.com/jwulff/onkey/internal/tuning"
	"github.com/jwulff/onkey/internal/ui"
)

const meterWidth = 41

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenModeSelect:
		body = m.viewModeSelect()
	case ScreenCalibration:
		body = m.viewCalibration()
	case ScreenTuning:
		body = m.viewTuning()
	case ScreenComplete:
		body = m.viewComplete()
	}

	var extra []string
	if m.audioErr != "" {
		extra = append(extra, ui.ErrorStyle.Render("audio: "+m.audioErr))
	}
	if m.saveErr != "" {
		extra = append(extra, ui.ErrorStyle.Render("save failed: "+m.saveErr))
	}
	if len(extra) > 0 {
		body += "\n" + strings.Join(extra, "\n")
	}
	return body + "\n"
}

func (m Model) viewModeSelect() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("onkey") + ui.DimStyle.Render("  piano tuning assistant"))
	b.WriteString("\n\n")
	b.WriteString("How should this piano be tuned?\n\n")

	modes := []struct {
		name string
		desc string
	}{
		{"Concert pitch", fmt.Sprintf("tune to A4 = %.1f Hz with octave stretch", m.cfg.A4)},
		{"Quick tune", "even out the piano against its own pitch center"},
	}
	for i, mode := range modes {
		cursor := "  "
		name := mode.name
		if i == m.modeCursor {
			cursor = ui.SelectedStyle.Render("> ")
			name = ui.SelectedStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%d. %s\n     %s\n", cursor, i+1, name, ui.DimStyle.Render(mode.desc)))
	}

	b.WriteString("\n")
	b.WriteString(footer(
		"↑/↓", "select",
		"enter", "start",
		"q", "quit",
	))
	return b.String()
}

func (m Model) viewCalibration() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Calibration") + "\n\n")
	b.WriteString("Play and hold " + ui.NoteStyle.Render("A4") +
		" (the A above middle C) a few times.\n")
	b.WriteString(ui.DimStyle.Render("Measuring how far the piano sits from concert pitch.") + "\n\n")

	b.WriteString(fmt.Sprintf("Readings: %s\n\n",
		ui.ProgressBar(len(m.calibCents), calibReadings, 20)))

	if m.listening {
		cents := tuning.Cents(m.freq, m.temperament.Frequency(tuning.MidiA4))
		b.WriteString(fmt.Sprintf("%.1f Hz  %s\n", m.freq, ui.Deviation(cents, m.cfg.Tolerance)))
	} else {
		b.WriteString(ui.ListeningStyle.Render("Listening...") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(footer("b/esc", "back", "q", "quit"))
	return b.String()
}

func (m Model) viewTuning() string {
	entry := m.order.EntryAt(m.session.CurrentNoteIndex)
	note := m.machine.Note()

	var b strings.Builder
	b.WriteString(ui.PhaseStyle.Render(entry.Phase.String()) + "  " +
		ui.ProgressBar(m.session.CurrentNoteIndex, tuning.NoteCount, 20) + "\n\n")

	b.WriteString(ui.NoteStyle.Render(note.DisplayName()))
	if entry.Reference != nil {
		b.WriteString(ui.DimStyle.Render("  (against " + entry.Reference.DisplayName() + ")"))
	}
	b.WriteString(fmt.Sprintf("  %s\n",
		ui.DimStyle.Render(fmt.Sprintf("target %.2f Hz", m.machine.ActiveTarget()))))

	b.WriteString(fmt.Sprintf("\nStep %d/%d  %s  %s\n",
		m.machine.StepNumber(), m.machine.TotalSteps(),
		ui.StepDots(m.machine.StepNumber(), m.machine.TotalSteps()),
		ui.StepTitleStyle.Render(m.machine.Step().Title())))
	b.WriteString(ui.DimStyle.Render(m.machine.Step().Instruction()) + "\n\n")

	if m.machine.HasReading() {
		cents := m.machine.LastCents()
		b.WriteString(ui.Meter(cents, m.cfg.Tolerance, meterWidth) + "\n")
		b.WriteString(ui.MeterLabels(meterWidth) + "\n")
		b.WriteString(fmt.Sprintf("%.1f Hz  %s", m.freq, ui.Deviation(cents, m.cfg.Tolerance)))
		if m.machine.InTolerance() {
			b.WriteString("  " + ui.InTuneStyle.Render("in tune"))
		}
		b.WriteString("\n")
		if hint := m.machine.DirectionHint(); hint != "" {
			b.WriteString(ui.WarningStyle.Render(hint) + "\n")
		}
	} else {
		b.WriteString(ui.ListeningStyle.Render("Listening...") + "\n")
	}

	b.WriteString("\n")
	keys := []string{
		"enter", "confirm step",
		"f", "force",
		"s", "skip note",
		"b", "back",
	}
	if m.beeper != nil {
		keys = append(keys, "r", "play target")
	}
	keys = append(keys, "q", "quit")
	b.WriteString(footer(keys...))
	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder
	b.WriteString(ui.InTuneStyle.Render("Tuning complete") + "\n\n")
	b.WriteString(fmt.Sprintf("Mode: %s    A4: %.1f Hz\n", m.session.Mode, m.session.A4Reference))
	b.WriteString(fmt.Sprintf("Notes recorded: %d of %d\n",
		len(m.session.CompletedNotes), tuning.NoteCount))
	b.WriteString(fmt.Sprintf("Average deviation at confirm: %.1f cents\n", m.session.AverageDeviation()))

	if m.session.Mode == tuning.ModeQuick && m.profile != nil {
		b.WriteString("\n" + ui.TitleStyle.Render("Piano profile") + "\n")
		measured, total := m.profile.Progress()
		coverage := "partial"
		if m.profile.IsComplete() {
			coverage = "every key measured"
		}
		b.WriteString(fmt.Sprintf("Keys measured: %d of %d (%s)\n", measured, total, coverage))
		b.WriteString(fmt.Sprintf("Average deviation before tuning: %.1f cents\n",
			m.profile.AverageDeviation()))
		if worst := m.profile.WorstNotes(3); len(worst) > 0 {
			b.WriteString("Farthest from pitch before tuning:\n")
			for _, pn := range worst {
				note, err := tuning.NoteForMidi(pn.Midi)
				if err != nil {
					continue
				}
				b.WriteString(fmt.Sprintf("  %-3s %s\n",
					note.DisplayName(), ui.Deviation(pn.Cents, m.cfg.Tolerance)))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(footer("enter", "exit", "q", "quit"))
	return b.String()
}

// footer renders alternating key/description pairs.
func footer(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, ui.FooterKeyStyle.Render(pairs[i])+" "+ui.FooterDescStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, ui.DividerStyle.Render("  │  "))
}
