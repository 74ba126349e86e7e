package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/platform/tui"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game|file.yaml>",
	Short: "Play a game",
	Long: `Start playing a built-in game or a game definition file.

Controls:
  A/D, Left/Right  - Move
  Space            - Shoot
  Enter            - Start / continue
  P/Esc            - Pause
  R                - Retry a failed level, play again at the end
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  arcade3d play gallery
  arcade3d play courier --fps 30
  arcade3d play ./my-game.yaml --config ./engine.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	def, ec, err := loadDefinition(args[0], flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := ec.Options(core.SystemClock{}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	e, err := engine.New(def, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Info("starting game", "game", def.ID, "levels", len(def.Levels))
	runErr := tui.Run(e, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
