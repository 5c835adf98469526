package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clusterpop/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show level progress",
	Long: `Show the current and highest unlocked level of a profile.

Examples:
  clusterpop progress
  clusterpop progress --profile alice
  clusterpop progress reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Lock every level except the first",
	Args:  cobra.NoArgs,
	Run:   runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressResetCmd)
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runProgress(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	p, err := store.Progress(flagProfile)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile:        %s\n", p.Profile)
	fmt.Printf("Current level:  %d\n", p.CurrentLevel)
	fmt.Printf("Unlocked up to: %d of %d\n", p.UnlockedLevel, appLevels.MaxID())
}

func runProgressReset(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.ResetProgress(flagProfile); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("progress reset", "profile", flagProfile)
	fmt.Printf("Progress for %s reset to level 1.\n", flagProfile)
}
