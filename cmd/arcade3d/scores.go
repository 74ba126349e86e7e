package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

var (
	flagScoresLevel string
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show recorded results for a game",
	Long: `Display the best won attempt of every level and the top 10 final
scores for the specified game. With --level, list the latest attempts at
one level instead.

Examples:
  arcade3d scores gallery
  arcade3d scores gallery --level wave2
  arcade3d scores gallery --reset`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Show the attempt history of one level")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete every recorded result of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Games played from a file are not registered; fall back to the id.
	title := gameID
	if registry.Exists(gameID) {
		if gf, err := registry.Create(gameID); err == nil && gf.Title != "" {
			title = gf.Title
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresReset:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared all results for %s.\n", title)
	case flagScoresLevel != "":
		printLevelHistory(store, gameID, flagScoresLevel)
	default:
		printBest(store, gameID, title)
	}
}

func printBest(store *storage.Store, gameID, title string) {
	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	best, err := store.BestLevelResults(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}
	if len(best) == 0 {
		fmt.Println("No levels won yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade3d play %s' to set the first record!\n", gameID)
		return
	}

	fmt.Printf("  %-12s  %-6s  %-9s  %-9s  %s\n", "Level", "Score", "Time", "Left", "Won by")
	fmt.Printf("  %-12s  %-6s  %-9s  %-9s  %s\n", "-----", "-----", "----", "----", "------")
	for _, r := range best {
		fmt.Printf("  %-12s  %-6d  %-9s  %-9s  %s\n",
			r.LevelID, r.Score, fmt.Sprintf("%.0fs", r.TimeToComplete), remaining(r), r.Criteria)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	if len(scores) > 0 {
		fmt.Println()
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Attempts: %d  Wins: %d  Best level score: %d\n", stats.Attempts, stats.Wins, stats.HighScore)
	}
}

func printLevelHistory(store *storage.Store, gameID, levelID string) {
	history, err := store.LevelHistory(gameID, levelID, 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Printf("No attempts recorded for level %q.\n", levelID)
		return
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %-9s  %s\n", "Date", "Result", "Score", "Left", "Criteria")
	fmt.Printf("  %-16s  %-6s  %-6s  %-9s  %s\n", "----", "------", "-----", "----", "--------")
	for _, r := range history {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-16s  %-6s  %-6d  %-9s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), result, r.Score, remaining(r), r.Criteria)
	}
}

func remaining(r storage.LevelRecord) string {
	if r.TimeRemaining == nil {
		return "unlimited"
	}
	return fmt.Sprintf("%.0fs", *r.TimeRemaining)
}
