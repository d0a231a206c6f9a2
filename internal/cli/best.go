package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/thecube/internal/session"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best time",
	Long:  `Display the best solve time kept by the configured storage backend.`,
	RunE:  runBest,
}

var bestClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the best time",
	RunE:  runBestClear,
}

func init() {
	rootCmd.AddCommand(bestCmd)
	bestCmd.AddCommand(bestClearCmd)
}

func runBest(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ms, err := store.LoadBest()
	if err != nil {
		return fmt.Errorf("failed to load best time: %w", err)
	}
	out := cmd.OutOrStdout()
	if ms == 0 {
		fmt.Fprintln(out, "No best time yet")
		return nil
	}
	fmt.Fprintf(out, "Best: %s (%s)\n", session.FormatDuration(time.Duration(ms)*time.Millisecond), formatBest(ms))
	return nil
}

func runBestClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearBest(); err != nil {
		return fmt.Errorf("failed to clear best time: %w", err)
	}
	logger.Info().Str("storage", string(prefs.Storage)).Msg("best time cleared")
	fmt.Fprintln(cmd.OutOrStdout(), "Best time cleared")
	return nil
}
