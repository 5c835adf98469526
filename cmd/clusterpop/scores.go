package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clusterpop/internal/games/clusterpop"
	"github.com/vovakirdan/clusterpop/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top scores of one level, or a summary of every level
when no level is given.

Examples:
  clusterpop scores
  clusterpop scores 3
  clusterpop scores 3 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	levelID, err := strconv.Atoi(args[0])
	if err != nil || !appLevels.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'clusterpop levels' to see available levels.")
		os.Exit(1)
	}
	if err := printLevelScores(store, levelID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printLevelScores(store *storage.Store, levelID int) error {
	scores, err := store.TopScores(clusterpop.ID, levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	lvl, err := appLevels.Get(levelID)
	if err != nil {
		return err
	}
	fmt.Printf("High Scores - Level %d: %s\n\n", lvl.ID, lvl.Name)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'clusterpop play --level %d' to set the first high score!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-16s  %s\n", "Rank", "Score", "Result", "Date", "Run")
	fmt.Printf("  %-4s  %-8s  %-6s  %-16s  %s\n", "----", "-----", "------", "----", "---")
	for i, e := range scores {
		result := "lost"
		if e.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-8d  %-6s  %-16s  %s\n",
			i+1, e.Score, result, e.CreatedAt.Format("2006-01-02 15:04"), e.RunID[:8])
	}

	fmt.Println()
	fmt.Printf("Target: %d\n", lvl.Objective.TargetScore)
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetLevelStats(clusterpop.ID)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - all levels")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-5s  %-4s  %-8s  %-8s  %s\n", "Level", "Plays", "Wins", "Best", "Average", "Last played")
	fmt.Printf("  %-5s  %-5s  %-4s  %-8s  %-8s  %s\n", "-----", "-----", "----", "----", "-------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-5d  %-5d  %-4d  %-8d  %-8.1f  %s\n",
			s.LevelID, s.Plays, s.Wins, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}

	high, err := store.HighScore(clusterpop.ID, 0)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}
