package tuning

import "math"

// Step is one stage of tuning a single note. Trichords walk
// MuteOuter → TuneCenter → UnisonLeft → UnisonRight → Done; notes with
// one or two strings collapse to TuneOnly → Done.
type Step int

const (
	StepMuteOuter Step = iota
	StepTuneCenter
	StepUnisonLeft
	StepUnisonRight
	StepTuneOnly
	StepDone
)

// Title returns a short heading for the step.
func (s Step) Title() string {
	switch s {
	case StepMuteOuter:
		return "Mute outer strings"
	case StepTuneCenter:
		return "Tune center string"
	case StepUnisonLeft:
		return "Tune left string"
	case StepUnisonRight:
		return "Tune right string"
	case StepTuneOnly:
		return "Tune strings"
	case StepDone:
		return "Done"
	}
	return ""
}

// Instruction returns the coaching text for the step.
func (s Step) Instruction() string {
	switch s {
	case StepMuteOuter:
		return "Use a felt strip or rubber mutes to mute the outer strings. Only the center string should sound."
	case StepTuneCenter:
		return "Tune the center string to the target pitch using the meter."
	case StepUnisonLeft:
		return "Unmute the left string. Tune it to match the center string until you hear no beats."
	case StepUnisonRight:
		return "Unmute the right string. Tune it to match the center string until you hear no beats."
	case StepTuneOnly:
		return "Tune the string to the target pitch using the meter. For two strings, tune one, then match the other to it."
	}
	return ""
}

// StepMachine drives the per-note procedure. Transitions happen only on
// explicit confirmation, never from detector input alone.
type StepMachine struct {
	note      Note
	target    float64
	tolerance float64

	step Step

	// centerFreq is the center string's measured frequency captured
	// when TuneCenter was confirmed. Unison steps chase this, not the
	// absolute target: unison elimination, not pitch matching.
	centerFreq float64

	lastFreq    float64
	lastCents   float64
	haveReading bool
}

// NewStepMachine starts the procedure for a note with its resolved
// target frequency and the confirmation tolerance in cents.
func NewStepMachine(note Note, target, tolerance float64) *StepMachine {
	first := StepTuneOnly
	if note.IsTrichord() {
		first = StepMuteOuter
	}
	return &StepMachine{
		note:      note,
		target:    target,
		tolerance: tolerance,
		step:      first,
	}
}

// Note returns the note being tuned.
func (m *StepMachine) Note() Note { return m.note }

// Step returns the current step.
func (m *StepMachine) Step() Step { return m.step }

// Done reports whether the note is finished.
func (m *StepMachine) Done() bool { return m.step == StepDone }

// StepNumber returns the 1-based position of the current step.
func (m *StepMachine) StepNumber() int {
	switch m.step {
	case StepMuteOuter:
		return 1
	case StepTuneCenter:
		return 2
	case StepUnisonLeft:
		return 3
	case StepUnisonRight:
		return 4
	case StepTuneOnly:
		return 1
	}
	return m.TotalSteps()
}

// TotalSteps returns the number of steps for this note's string count.
func (m *StepMachine) TotalSteps() int {
	if m.note.IsTrichord() {
		return 4
	}
	return 1
}

// ActiveTarget returns the frequency the current step tunes toward:
// the resolved note target for tune steps, the measured center string
// for unison steps.
func (m *StepMachine) ActiveTarget() float64 {
	switch m.step {
	case StepUnisonLeft, StepUnisonRight:
		return m.centerFreq
	default:
		return m.target
	}
}

// Observe records a detected frequency against the active target and
// returns the cents deviation.
func (m *StepMachine) Observe(freq float64) float64 {
	m.lastFreq = freq
	m.lastCents = Cents(freq, m.ActiveTarget())
	m.haveReading = true
	return m.lastCents
}

// ClearReading drops the last observation (detector went silent).
func (m *StepMachine) ClearReading() {
	m.haveReading = false
}

// LastCents returns the most recent observed deviation, or 0 if there
// has been no reading on the current step.
func (m *StepMachine) LastCents() float64 {
	if !m.haveReading {
		return 0
	}
	return m.lastCents
}

// HasReading reports whether the current step has a live observation.
func (m *StepMachine) HasReading() bool { return m.haveReading }

// InTolerance reports whether the last reading is within the
// confirmation tolerance.
func (m *StepMachine) InTolerance() bool {
	return m.haveReading && math.Abs(m.lastCents) <= m.tolerance
}

// Confirm advances to the next step. Tuning steps (TuneCenter,
// TuneOnly) only advance when the last reading is within tolerance,
// unless force is set. Returns true if the step changed.
func (m *StepMachine) Confirm(force bool) bool {
	switch m.step {
	case StepMuteOuter:
		m.advance(StepTuneCenter)
	case StepTuneCenter:
		if !m.InTolerance() && !force {
			return false
		}
		// Capture the center string as the unison reference before
		// moving on. Without a reading, fall back to the target.
		m.centerFreq = m.target
		if m.haveReading {
			m.centerFreq = m.lastFreq
		}
		m.advance(StepUnisonLeft)
	case StepUnisonLeft:
		m.advance(StepUnisonRight)
	case StepUnisonRight:
		m.advance(StepDone)
	case StepTuneOnly:
		if !m.InTolerance() && !force {
			return false
		}
		m.advance(StepDone)
	default:
		return false
	}
	return true
}

// Skip jumps straight to Done from any step. The caller records a
// placeholder deviation.
func (m *StepMachine) Skip() {
	m.step = StepDone
	m.haveReading = false
}

func (m *StepMachine) advance(next Step) {
	m.step = next
	m.haveReading = false
}

// DirectionHint returns pin-turning advice when the reading is clearly
// off, or "" when there is nothing useful to say.
func (m *StepMachine) DirectionHint() string {
	if !m.haveReading || math.Abs(m.lastCents) <= m.tolerance {
		return ""
	}
	if m.lastCents < 0 {
		return "Turn the tuning pin clockwise (tighten) slightly"
	}
	return "Turn the tuning pin counter-clockwise (loosen) slightly"
}
