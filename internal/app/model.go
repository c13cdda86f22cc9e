// Package app is the bubbletea state machine driving the guided tuning
// session: mode selection, quick-mode calibration, the per-note step
// procedure, and the completion summary.
package app

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/onkey/internal/audio"
	"github.com/jwulff/onkey/internal/config"
	"github.com/jwulff/onkey/internal/store"
	"github.com/jwulff/onkey/internal/tuning"
)

// confidenceFloor is the minimum detector confidence a reading must
// carry before it moves the meter.
const confidenceFloor = 0.5

// calibReadings is how many confident A4 readings calibration averages
// before computing the piano's pitch offset.
const calibReadings = 10

// calibWindowCents rejects calibration readings too far from A4 to be
// the A4 string (overtones, wrong key).
const calibWindowCents = 150.0

// Screen identifies which view the model is showing.
type Screen int

const (
	ScreenModeSelect Screen = iota
	ScreenCalibration
	ScreenTuning
	ScreenComplete
)

// Params wires the model to its collaborators. Updates may be nil in
// tests; Beeper may be nil when tone output is unavailable or disabled.
type Params struct {
	Config    *config.Config
	Store     *store.Store
	Session   *tuning.Session
	Profile   *tuning.PianoProfile
	Updates   <-chan audio.Update
	StopAudio func()
	Beeper    audio.Sink
}

// Model is the root bubbletea model.
type Model struct {
	cfg       *config.Config
	store     *store.Store
	updates   <-chan audio.Update
	stopAudio func()
	beeper    audio.Sink

	screen     Screen
	modeCursor int

	session     *tuning.Session
	profile     *tuning.PianoProfile
	order       *tuning.Order
	temperament tuning.Temperament
	resolver    *tuning.Resolver
	machine     *tuning.StepMachine

	// Calibration accumulators.
	calibCents []float64
	calibFreqs []float64

	// Latest detector reading for display.
	freq       float64
	confidence float64
	listening  bool

	// noteCents is the deviation captured when the tune step was
	// confirmed; it becomes the note's recorded final deviation.
	noteCents float64

	saveErr  string
	audioErr string
	width    int
	height   int
}

// New creates the model. A non-nil Session resumes mid-tuning; nil
// starts at mode selection.
func New(p Params) Model {
	m := Model{
		cfg:       p.Config,
		store:     p.Store,
		updates:   p.Updates,
		stopAudio: p.StopAudio,
		beeper:    p.Beeper,
		profile:   p.Profile,
		order:     tuning.NewOrder(),
		screen:    ScreenModeSelect,
	}
	if m.cfg.Mode() == tuning.ModeQuick {
		m.modeCursor = 1
	}
	if p.Session != nil {
		m.session = p.Session
		m.temperament = tuning.NewTemperament(p.Session.A4Reference)
		m.resolver = tuning.NewResolver(p.Session, p.Profile)
		if p.Session.IsComplete() {
			m.screen = ScreenComplete
		} else {
			m.screen = ScreenTuning
			m.machine = m.machineFor(p.Session.CurrentNoteIndex)
		}
	}
	return m
}

// Session exposes the active session for the CLI's exit summary.
func (m Model) Session() *tuning.Session { return m.session }

// Init starts the pitch read loop.
func (m Model) Init() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return waitForPitch(m.updates)
}

// waitForPitch blocks on the next pump update.
func waitForPitch(updates <-chan audio.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return pitchClosedMsg{}
		}
		return PitchMsg{Update: u}
	}
}

// saveSessionCmd persists a snapshot of the session off the Update
// loop. The snapshot copy keeps the background marshal from racing
// later mutations.
func saveSessionCmd(st *store.Store, sess *tuning.Session) tea.Cmd {
	snap := *sess
	snap.CompletedNotes = append([]tuning.CompletedNote(nil), sess.CompletedNotes...)
	return func() tea.Msg {
		return saveDoneMsg{err: st.SaveSession(&snap)}
	}
}

// saveProfileCmd persists a snapshot of the piano profile.
func saveProfileCmd(st *store.Store, p *tuning.PianoProfile) tea.Cmd {
	snap := *p
	return func() tea.Msg {
		return saveDoneMsg{err: st.SaveProfile(&snap)}
	}
}

// playToneCmd plays a short reference tone through the sink.
func playToneCmd(sink audio.Sink, frequency, duration float64) tea.Cmd {
	return func() tea.Msg {
		t := audio.NewTone(sink.SampleRate())
		return toneDoneMsg{err: t.Play(sink, frequency, duration)}
	}
}

// Update processes messages and returns the updated model and any
// commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PitchMsg:
		cmd := m.handlePitch(msg.Update)
		if m.updates == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, waitForPitch(m.updates))

	case pitchClosedMsg:
		m.listening = false
		if m.audioErr == "" && m.screen != ScreenComplete {
			m.audioErr = "microphone stream ended"
		}
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			m.saveErr = msg.err.Error()
		} else {
			m.saveErr = ""
		}
		return m, nil

	case toneDoneMsg:
		return m, nil
	}

	return m, nil
}

// handlePitch folds one detector update into the current screen.
func (m *Model) handlePitch(u audio.Update) tea.Cmd {
	if u.Err != nil {
		m.audioErr = u.Err.Error()
		m.listening = false
		return nil
	}

	confident := u.Pitched && u.Result.Confidence >= confidenceFloor
	if confident {
		m.freq = u.Result.Frequency
		m.confidence = u.Result.Confidence
	}
	m.listening = confident

	switch m.screen {
	case ScreenCalibration:
		if confident {
			return m.observeCalibration(u.Result.Frequency)
		}
	case ScreenTuning:
		if confident {
			m.machine.Observe(u.Result.Frequency)
		} else {
			m.machine.ClearReading()
		}
	}
	return nil
}

// observeCalibration accumulates A4 readings and finishes calibration
// once enough have arrived.
func (m *Model) observeCalibration(freq float64) tea.Cmd {
	cents := tuning.Cents(freq, m.temperament.Frequency(tuning.MidiA4))
	if math.Abs(cents) > calibWindowCents {
		return nil
	}
	m.calibCents = append(m.calibCents, cents)
	m.calibFreqs = append(m.calibFreqs, freq)
	if len(m.calibCents) < calibReadings {
		return nil
	}

	var sumCents, sumFreq float64
	for i := range m.calibCents {
		sumCents += m.calibCents[i]
		sumFreq += m.calibFreqs[i]
	}
	n := float64(len(m.calibCents))
	m.session.PianoOffsetCents = sumCents / n
	m.profile.Record(tuning.MidiA4, sumFreq/n, sumCents/n)

	m.resolver = tuning.NewResolver(m.session, m.profile)
	m.machine = m.machineFor(m.session.CurrentNoteIndex)
	m.screen = ScreenTuning
	return tea.Batch(
		saveSessionCmd(m.store, m.session),
		saveProfileCmd(m.store, m.profile),
	)
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUp, KeyCtrlC:
		if m.stopAudio != nil {
			m.stopAudio()
		}
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenModeSelect:
		return m.handleModeSelectKey(msg)
	case ScreenCalibration:
		return m.handleCalibrationKey(msg)
	case ScreenTuning:
		return m.handleTuningKey(msg)
	case ScreenComplete:
		if msg.String() == KeyEnter {
			if m.stopAudio != nil {
				m.stopAudio()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleModeSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyUp, KeyK, KeyDown, KeyJ:
		m.modeCursor = 1 - m.modeCursor
		return m, nil
	case KeyConcert:
		return m.startSession(tuning.ModeConcert)
	case KeyQuick:
		return m.startSession(tuning.ModeQuick)
	case KeyEnter:
		if m.modeCursor == 1 {
			return m.startSession(tuning.ModeQuick)
		}
		return m.startSession(tuning.ModeConcert)
	}
	return m, nil
}

// handleCalibrationKey lets the player abandon calibration back to
// mode selection. Nothing has been saved yet at this point.
func (m Model) handleCalibrationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyBack, KeyEsc:
		m.session = nil
		m.calibCents = nil
		m.calibFreqs = nil
		m.screen = ScreenModeSelect
	}
	return m, nil
}

// startSession creates a fresh session. Quick mode detours through
// calibration to measure the piano's pitch center first; the session
// is not persisted until calibration finishes, so backing out leaves
// no file behind.
func (m Model) startSession(mode tuning.Mode) (tea.Model, tea.Cmd) {
	m.session = tuning.NewSession(mode, m.cfg.A4)
	m.temperament = tuning.NewTemperament(m.cfg.A4)

	if mode == tuning.ModeQuick {
		if m.profile == nil {
			m.profile = tuning.NewProfile()
		}
		m.calibCents = nil
		m.calibFreqs = nil
		m.screen = ScreenCalibration
		return m, nil
	}

	m.resolver = tuning.NewResolver(m.session, m.profile)
	m.machine = m.machineFor(0)
	m.screen = ScreenTuning
	return m, saveSessionCmd(m.store, m.session)
}

func (m Model) handleTuningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		return m.confirmStep(false)
	case KeyForce:
		return m.confirmStep(true)
	case KeySkip:
		m.machine.Skip()
		m.session.SkipNote(m.machine.Note().DisplayName())
		return m.advance(false)
	case KeyBack:
		if !m.session.Reopen() {
			return m, nil
		}
		m.machine = m.machineFor(m.session.CurrentNoteIndex)
		return m, saveSessionCmd(m.store, m.session)
	case KeyReplay:
		if m.beeper == nil {
			return m, nil
		}
		return m, playToneCmd(m.beeper, m.machine.ActiveTarget(), 1.0)
	}
	return m, nil
}

// confirmStep advances the step machine and, when the note finishes,
// records it on the session.
func (m Model) confirmStep(force bool) (tea.Model, tea.Cmd) {
	step := m.machine.Step()
	cents := m.machine.LastCents()
	hadReading := m.machine.HasReading()

	if !m.machine.Confirm(force) {
		return m, nil
	}

	// The deviation standing when the tune step is confirmed is the
	// note's final deviation.
	if step == tuning.StepTuneCenter || step == tuning.StepTuneOnly {
		m.noteCents = cents
		if m.session.Mode == tuning.ModeQuick && hadReading && m.profile != nil {
			base := m.temperament.Frequency(m.machine.Note().Midi)
			m.profile.Record(m.machine.Note().Midi, m.freq, tuning.Cents(m.freq, base))
		}
	}

	if !m.machine.Done() {
		return m, nil
	}
	m.session.CompleteNote(m.machine.Note().DisplayName(), m.noteCents)
	return m.advance(true)
}

// advance moves to the next note, or the completion screen after the
// 88th, saving as it goes. locked plays the confirmation beep when one
// is configured.
func (m Model) advance(locked bool) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{saveSessionCmd(m.store, m.session)}
	if m.session.Mode == tuning.ModeQuick && m.profile != nil {
		cmds = append(cmds, saveProfileCmd(m.store, m.profile))
	}
	if locked && m.beeper != nil && m.cfg.Beep {
		cmds = append(cmds, playToneCmd(m.beeper, m.machine.ActiveTarget(), 0.15))
	}

	if m.session.IsComplete() {
		m.screen = ScreenComplete
		if m.stopAudio != nil {
			m.stopAudio()
		}
		return m, tea.Batch(cmds...)
	}

	m.machine = m.machineFor(m.session.CurrentNoteIndex)
	m.noteCents = 0
	return m, tea.Batch(cmds...)
}

// machineFor builds the step machine for the order entry at index.
func (m *Model) machineFor(index int) *tuning.StepMachine {
	entry := m.order.EntryAt(index)
	return tuning.NewStepMachine(entry.Note, m.resolver.Target(entry), m.cfg.Tolerance)
}
