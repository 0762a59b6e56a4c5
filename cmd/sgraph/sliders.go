package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/simgraph/internal/slider"
	"github.com/matsen/simgraph/internal/storage"
)

// sliderBarWidth is the width of the human-readable weight bar.
const sliderBarWidth = 30

var slidersMetrics int

// SlidersResponse is the response for sliders commands.
type SlidersResponse struct {
	Weights []float64 `json:"weights"`
	Total   float64   `json:"total"`
}

var slidersCmd = &cobra.Command{
	Use:   "sliders",
	Short: "Inspect and adjust the persisted metric weights",
	Long: `Slider weights blend the similarity metrics into one link strength. They
always sum to 100. Moving one slider rescales the others so the total holds.

The number of metrics must be given with --metrics; a saved vector of a
different length is replaced by equal weights.`,
}

var slidersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current weights",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withSliders(func(s *slider.Sliders) error { return nil })
	},
}

var slidersSetCmd = &cobra.Command{
	Use:   "set <index> <value>",
	Short: "Move one slider and redistribute the others",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			exitWithError(ExitError, "invalid index %q: %v", args[0], err)
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			exitWithError(ExitError, "invalid value %q: %v", args[1], err)
		}
		withSliders(func(s *slider.Sliders) error { return s.Set(index, value) })
	},
}

var slidersResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore equal weights",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withSliders(func(s *slider.Sliders) error { return s.Reset() })
	},
}

func init() {
	slidersCmd.PersistentFlags().IntVar(&slidersMetrics, "metrics", 0, "Number of similarity metrics")
	_ = slidersCmd.MarkPersistentFlagRequired("metrics")

	slidersCmd.AddCommand(slidersShowCmd)
	slidersCmd.AddCommand(slidersSetCmd)
	slidersCmd.AddCommand(slidersResetCmd)
	rootCmd.AddCommand(slidersCmd)
}

// withSliders loads the sliders, applies fn and prints the result.
func withSliders(fn func(*slider.Sliders) error) {
	if slidersMetrics < 1 {
		exitWithError(ExitError, "--metrics must be at least 1")
	}

	cfg := mustLoadConfig()
	db := mustOpenState(cfg)
	defer db.Close()

	s := loadSliders(db, slidersMetrics)
	if err := fn(s); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	weights := s.Values()
	if humanOutput {
		printSlidersHuman(weights)
		return
	}
	outputJSON(SlidersResponse{Weights: weights, Total: slider.Total})
}

// loadSliders restores sliders, warning instead of failing on unreadable state.
func loadSliders(db *storage.DB, n int) *slider.Sliders {
	s, err := slider.Load(db, n)
	if err != nil {
		slog.Warn("restoring sliders failed, using equal weights", "error", err)
	}
	return s
}

func printSlidersHuman(weights slider.Weights) {
	rows := make([][]string, 0, len(weights))
	for i, w := range weights {
		filled := int(w / slider.Total * sliderBarWidth)
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(w, 'f', 2, 64),
			headingColor.Sprint(strings.Repeat("#", filled)) + strings.Repeat(".", sliderBarWidth-filled),
		})
	}
	if err := renderTable([]string{"Slider", "Weight", ""}, rows); err != nil {
		exitWithError(ExitError, "rendering table: %v", err)
	}
}
