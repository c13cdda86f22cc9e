package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jwulff/onkey/internal/audio"
	"github.com/jwulff/onkey/internal/pitch"
	"github.com/jwulff/onkey/internal/tuning"
)

var flagDuration float64

var referenceCmd = &cobra.Command{
	Use:   "reference <note>",
	Short: "Play a reference tone for a note",
	Long: `reference plays a sine tone at the note's equal-temperament pitch,
e.g. "onkey reference A4" or "onkey reference C#5".`,
	Args: cobra.ExactArgs(1),
	RunE: runReference,
}

func init() {
	referenceCmd.Flags().Float64Var(&flagDuration, "duration", 2.0, "tone length in seconds")
}

func runReference(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	note, err := tuning.ParseNote(args[0])
	if err != nil {
		return err
	}
	freq := tuning.NewTemperament(cfg.A4).Frequency(note.Midi)
	fmt.Printf("%s = %.2f Hz\n", note.DisplayName(), freq)

	speaker, err := audio.OpenSpeaker(pitch.DefaultSampleRate)
	if err != nil {
		// Printing the pitch is still useful on machines without audio
		// output, so this is not a failure.
		log.Warn("audio output unavailable", "err", err)
		return nil
	}
	defer speaker.Close()

	tone := audio.NewTone(speaker.SampleRate())
	if err := tone.Play(speaker, freq, flagDuration); err != nil {
		log.Warn("could not play tone", "err", err)
	}
	return nil
}
