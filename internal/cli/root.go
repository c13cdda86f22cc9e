// Package cli wires the cobra command tree: the interactive tuner plus
// the analyze, reference, history, and reset subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jwulff/onkey/internal/app"
	"github.com/jwulff/onkey/internal/audio"
	"github.com/jwulff/onkey/internal/config"
	"github.com/jwulff/onkey/internal/pitch"
	"github.com/jwulff/onkey/internal/store"
	"github.com/jwulff/onkey/internal/tuning"
)

var (
	flagResume bool
	flagQuick  bool
	flagA4     float64
	flagBeep   bool
)

var rootCmd = &cobra.Command{
	Use:   "onkey",
	Short: "Guided piano tuning from the terminal",
	Long: `onkey listens to your piano through the microphone and walks you
through tuning all 88 notes: temperament octave first, then octaves
up and down, string by string.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	rootCmd.Flags().BoolVar(&flagResume, "resume", false, "resume the most recent unfinished session")
	rootCmd.Flags().BoolVar(&flagQuick, "quick", false, "default to quick mode (tune against the piano's own pitch)")
	rootCmd.PersistentFlags().Float64Var(&flagA4, "a4", 0, "A4 reference frequency in Hz (overrides config)")
	rootCmd.Flags().BoolVar(&flagBeep, "beep", false, "play a confirmation tone when a note locks in")

	rootCmd.AddCommand(analyzeCmd, referenceCmd, historyCmd, resetCmd)
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig reads the config file and folds CLI flags over it.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Warn("using default config", "err", err)
	}
	if cmd.Flags().Changed("a4") {
		cfg.A4 = flagA4
	}
	if flagBeep {
		cfg.Beep = true
	}
	if flagQuick {
		cfg.DefaultMode = string(tuning.ModeQuick)
	}
	return cfg
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	st := store.New(store.DefaultDir())

	// The alternate screen owns the terminal, so warnings go to a file.
	if f, err := openLogFile(); err == nil {
		log.SetOutput(f)
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var sess *tuning.Session
	if flagResume {
		var err error
		sess, err = st.ResumeTarget()
		if errors.Is(err, store.ErrNoSession) {
			log.Warn("no unfinished session to resume, starting fresh")
		} else if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
	}

	profile, err := st.LatestProfile()
	if err != nil {
		log.Warn("could not load piano profile", "err", err)
	}

	capture, err := audio.OpenCapture(pitch.DefaultSampleRate)
	if err != nil {
		return fmt.Errorf("open microphone: %w", err)
	}
	defer capture.Close()

	det := pitch.NewDetector(pitch.DefaultSampleRate, pitch.DefaultBufferSize)
	pump := audio.NewPump(capture, det)
	pump.Start()

	// Tone output is optional: the tuner works fine without it.
	var beeper audio.Sink
	if speaker, err := audio.OpenSpeaker(pitch.DefaultSampleRate); err != nil {
		log.Warn("audio output unavailable, reference tones disabled", "err", err)
	} else {
		beeper = speaker
		defer speaker.Close()
	}

	model := app.New(app.Params{
		Config:    cfg,
		Store:     st,
		Session:   sess,
		Profile:   profile,
		Updates:   pump.Updates(),
		StopAudio: pump.Stop,
		Beeper:    beeper,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	pump.Stop()
	if err != nil {
		return fmt.Errorf("run tuner: %w", err)
	}

	if m, ok := final.(app.Model); ok {
		if s := m.Session(); s != nil {
			fmt.Printf("Session %s: %d/%d notes, %.1f%% done\n",
				s.ID, s.CurrentNoteIndex, tuning.NoteCount, s.ProgressPercent())
		}
	}
	return nil
}

// openLogFile opens the append-only TUI log under the user cache dir.
func openLogFile() (*os.File, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(base, "onkey")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "onkey.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
