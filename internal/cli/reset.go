package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jwulff/onkey/internal/store"
)

var flagForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored tuning sessions",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagForce, "force", false, "delete without asking")
}

func runReset(cmd *cobra.Command, args []string) error {
	st := store.New(store.DefaultDir())
	sessions, err := st.Sessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions to delete.")
		return nil
	}
	if !flagForce {
		return fmt.Errorf("would delete %d session(s); re-run with --force to confirm", len(sessions))
	}
	if err := st.Reset(); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	log.Info("deleted sessions", "count", len(sessions))
	return nil
}
