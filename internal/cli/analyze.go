package cli

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jwulff/onkey/internal/audio"
	"github.com/jwulff/onkey/internal/pitch"
	"github.com/jwulff/onkey/internal/tuning"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav>",
	Short: "Detect the pitch of a recorded note",
	Long: `analyze runs the pitch detector over a WAV recording of a single
note and reports the median detected frequency, the nearest note, and
the deviation in cents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	src, err := audio.OpenWAV(args[0])
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer src.Close()

	det := pitch.NewDetector(src.SampleRate(), pitch.DefaultBufferSize)
	pump := audio.NewPump(src, det)
	pump.Start()

	var freqs []float64
	var confSum float64
	for u := range pump.Updates() {
		if u.Err != nil {
			return fmt.Errorf("analyze recording: %w", u.Err)
		}
		if u.Pitched && u.Result.Confidence >= 0.5 {
			freqs = append(freqs, u.Result.Frequency)
			confSum += u.Result.Confidence
		}
	}
	if len(freqs) == 0 {
		return fmt.Errorf("no pitch detected in %s", args[0])
	}

	sort.Float64s(freqs)
	median := freqs[len(freqs)/2]
	note, cents := nearestNote(median, tuning.NewTemperament(cfg.A4))

	fmt.Printf("Frequency: %.2f Hz (%d confident windows)\n", median, len(freqs))
	fmt.Printf("Nearest note: %s (%.2f Hz)\n", note.DisplayName(),
		tuning.NewTemperament(cfg.A4).Frequency(note.Midi))
	fmt.Printf("Deviation: %+.1f cents\n", cents)
	fmt.Printf("Confidence: %.2f\n", confSum/float64(len(freqs)))
	return nil
}

// nearestNote returns the keyboard note closest to freq and the
// deviation from its equal-temperament pitch.
func nearestNote(freq float64, temp tuning.Temperament) (tuning.Note, float64) {
	best := tuning.NoteAt(0)
	bestCents := tuning.Cents(freq, temp.Frequency(best.Midi))
	for i := 1; i < tuning.NoteCount; i++ {
		n := tuning.NoteAt(i)
		c := tuning.Cents(freq, temp.Frequency(n.Midi))
		if math.Abs(c) < math.Abs(bestCents) {
			best, bestCents = n, c
		}
	}
	return best, bestCents
}
