package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade3d/internal/config"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/world"
)

var validateCmd = &cobra.Command{
	Use:   "validate <game|file.yaml>",
	Short: "Check a game definition",
	Long: `Load a game definition, build its engine and print a summary of
every level. Exits non-zero when the definition is invalid.

Examples:
  arcade3d validate ./my-game.yaml
  arcade3d validate gallery --config ./engine.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
}

func runValidate(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	def, ec, err := loadDefinition(args[0], flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		closeLog()
		os.Exit(1)
	}
	var e *engine.Engine
	opts, err := ec.Options(nil, logger)
	if err == nil {
		e, err = engine.New(def, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	fmt.Printf("%s (%s): %d levels\n", def.Title, def.ID, len(def.Levels))
	fmt.Println()

	settings := make(map[string]string, len(def.Levels))
	for _, ls := range e.Store().Levels() {
		settings[ls.ID] = criteria(ls)
	}

	summary := config.Summarize(def)
	fmt.Printf("  %-12s  %-7s  %-7s  %-24s  %s\n", "Level", "Objects", "Enemies", "Colliders", "Win / Fail")
	fmt.Printf("  %-12s  %-7s  %-7s  %-24s  %s\n", "-----", "-------", "-------", "---------", "----------")
	for _, s := range summary {
		fmt.Printf("  %-12s  %-7d  %-7d  %-24s  %s\n", s.ID, s.Objects, s.Enemies, colliders(s.Colliders), settings[s.ID])
	}

	if ids := ec.OverObjectLimit(summary); len(ids) > 0 {
		fmt.Println()
		fmt.Printf("Warning: %s declare more than %d objects\n", strings.Join(ids, ", "), ec.MaxObjects)
	}
}

// criteria formats the merged win and fail criteria of a level.
func criteria(ls world.LevelSettings) string {
	var win, fail []string
	for _, c := range ls.WinCriteria {
		win = append(win, c.String())
	}
	for _, c := range ls.FailCriteria {
		fail = append(fail, c.String())
	}
	return strings.Join(win, ",") + " / " + strings.Join(fail, ",")
}

func colliders(counts map[string]int) string {
	shapes := make([]string, 0, len(counts))
	for shape := range counts {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)
	parts := make([]string, 0, len(shapes))
	for _, shape := range shapes {
		parts = append(parts, fmt.Sprintf("%s=%d", shape, counts[shape]))
	}
	return strings.Join(parts, " ")
}
