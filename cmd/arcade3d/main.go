// arcade3d runs declarative arcade games in the terminal.
//
// Usage:
//
//	arcade3d list                  - List built-in games
//	arcade3d play <game|file.yaml> - Play a game
//	arcade3d validate <file.yaml>  - Check a game definition
//	arcade3d scores <game>         - Show best level results and scores
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: 60)
//	--db <path>         - Set database path (default: ~/.arcade3d/scores.db)
//	--log-level <level> - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/arcade3d/internal/games/courier"
	_ "github.com/vovakirdan/arcade3d/internal/games/gallery"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade3d",
	Short: "arcade3d - declarative arcade games in your terminal",
	Long: `arcade3d plays games described as levels of objects, enemies and
win/fail rules, drawn as a top-down projection in the terminal.

Available commands:
  list      - Show built-in games
  play      - Play a built-in game or a YAML definition
  validate  - Check a YAML game definition
  scores    - View recorded level results and scores

Examples:
  arcade3d list
  arcade3d play gallery
  arcade3d play ./my-game.yaml --config ./engine.yaml
  arcade3d validate ./my-game.yaml
  arcade3d scores gallery`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade3d/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
}
