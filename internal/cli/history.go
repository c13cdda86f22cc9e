package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwulff/onkey/internal/store"
	"github.com/jwulff/onkey/internal/tuning"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past tuning sessions",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	st := store.New(store.DefaultDir())
	sessions, err := st.Sessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}

	for _, s := range sessions {
		status := "in progress"
		if s.IsComplete() {
			status = "complete"
		}
		fmt.Printf("%s  %-7s  %3d/%d notes (%5.1f%%)  avg %.1f cents  %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Mode, s.CurrentNoteIndex, tuning.NoteCount,
			s.ProgressPercent(), s.AverageDeviation(), status)
	}
	return nil
}
