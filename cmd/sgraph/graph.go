package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/simgraph/internal/config"
	"github.com/matsen/simgraph/internal/source"
	"github.com/matsen/simgraph/internal/viz"
)

// DefaultLinkRows bounds the link table in human output.
const DefaultLinkRows = 20

var (
	graphFile      string
	graphNoCache   bool
	graphFilter    float64
	graphYear      int
	graphPalette   string
	graphHoverNode string
	graphHoverLink string
	graphHTML      string
	graphLayout    string
	graphLinkRows  int
)

func init() {
	// Load .env file if present (for SGRAPH_API_URL)
	_ = godotenv.Load()

	graphCmd.Flags().StringVar(&graphFile, "file", "", "Read the snapshot from a JSON file instead of the graph API")
	graphCmd.Flags().BoolVar(&graphNoCache, "no-cache", false, "Always fetch from the graph API, bypassing the snapshot archive")
	graphCmd.Flags().Float64Var(&graphFilter, "filter", 0, "Weak-link filter, 0-100 (default from config)")
	graphCmd.Flags().IntVar(&graphYear, "year", 0, "Reference year for node opacity (default: current year)")
	graphCmd.Flags().StringVar(&graphPalette, "palette", "", "Node palette (default from config)")
	graphCmd.Flags().StringVar(&graphHoverNode, "hover-node", "", "Render with this node hovered")
	graphCmd.Flags().StringVar(&graphHoverLink, "hover-link", "", "Render with this link (source|target) hovered")
	graphCmd.Flags().StringVar(&graphHTML, "html", "", "Write an interactive HTML page to this path")
	graphCmd.Flags().StringVar(&graphLayout, "layout", "force", "HTML layout algorithm: force, circle, or grid")
	graphCmd.Flags().IntVar(&graphLinkRows, "links", DefaultLinkRows, "Number of strongest links in human output")
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph [paper-id]",
	Short: "Build and render the similarity graph around a paper",
	Long: `Build the similarity graph around a root paper and render it with the
persisted slider weights.

The snapshot comes from the graph API (archived locally after the first
fetch) or from a JSON file with --file. The paper is added to the recent
papers list.

Examples:
  # Evaluated frame as JSON
  sgraph graph 204e3073870fae3d05bcbc2f6a8e263d9b72e776

  # Summary tables, hiding links below 30% similarity
  sgraph graph 204e3073 --filter 30 --human

  # Interactive page from a saved snapshot
  sgraph graph --file snapshot.json --html graph.html`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) {
	paperID := ""
	if len(args) == 1 {
		paperID = args[0]
	}
	if paperID == "" && graphFile == "" {
		exitWithError(ExitError, "a paper ID is required unless --file is given")
	}

	cfg := mustLoadConfig()
	db := mustOpenState(cfg)
	defer db.Close()

	settings := cfg.Settings()
	if graphYear != 0 {
		settings.CurrentYear = graphYear
	}
	session := viz.NewSession(db, settings)

	if cmd.Flags().Changed("filter") {
		if err := session.SetFilter(graphFilter); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}
	if graphPalette != "" {
		p, err := viz.PaletteByName(graphPalette)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		session.SetPalette(p)
	}

	src := snapshotSource(cfg, graphFile, graphNoCache)
	snap, err := src.Snapshot(cmd.Context(), paperID)
	if err != nil {
		exitWithError(sourceExitCode(err), "loading snapshot: %v", err)
	}
	if err := session.Load(snap); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if err := session.HoverNode(graphHoverNode); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := session.HoverLink(graphHoverLink); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := db.AddRecentPaper(session.Graph().RootID); err != nil {
		slog.Warn("recording recent paper failed", "paper", session.Graph().RootID, "error", err)
	}

	frame := session.Frame()

	if graphHTML != "" {
		writeGraphHTML(&frame)
		return
	}
	if humanOutput {
		if err := printFrameHuman(&frame, graphLinkRows); err != nil {
			exitWithError(ExitError, "rendering tables: %v", err)
		}
		return
	}
	outputJSON(frame)
}

// snapshotSource picks the file, archived API or direct API source.
func snapshotSource(cfg *config.GlobalConfig, file string, noCache bool) source.Source {
	if file != "" {
		return source.File{Path: file}
	}

	client := source.NewClient(source.WithBaseURL(cfg.APIURL))
	if noCache {
		return client
	}
	return source.Caching{
		Source:  client,
		Archive: source.Archive{Path: config.ArchivePath(cfg.StatePath)},
	}
}

func writeGraphHTML(frame *viz.Frame) {
	opts := viz.DefaultOptions()
	opts.Layout = graphLayout

	html, err := viz.GenerateHTML(frame, opts)
	if err != nil {
		exitWithError(ExitError, "generating HTML: %v", err)
	}
	if err := os.WriteFile(graphHTML, []byte(html), 0644); err != nil {
		exitWithError(ExitError, "writing output file: %v", err)
	}

	if humanOutput {
		fmt.Printf("Visualization written to %s\n", graphHTML)
		return
	}
	outputJSON(StatusResponse{Status: "written", Path: graphHTML})
}

// printFrameHuman prints the root header followed by metric, node and link tables.
func printFrameHuman(frame *viz.Frame, linkRows int) error {
	if frame.IsEmpty() {
		fmt.Println("Graph is empty.")
		return nil
	}

	for _, n := range frame.Nodes {
		if n.Root {
			rootColor.Println(truncateString(n.Title, HeaderTitleMaxLen))
		}
	}
	fmt.Printf("%d papers, %d of %d links visible (filter %.0f)\n\n",
		len(frame.Nodes), frame.VisibleLinks(), len(frame.Links), frame.Legend.Filter)

	headingColor.Println("Metrics")
	metricRows := make([][]string, 0, len(frame.Legend.Metrics))
	for _, m := range frame.Legend.Metrics {
		metricRows = append(metricRows, []string{m.Name, strconv.FormatFloat(m.Weight, 'f', 2, 64)})
	}
	if err := renderTable([]string{"Metric", "Weight"}, metricRows); err != nil {
		return err
	}

	fmt.Println()
	headingColor.Println("Papers")
	nodeRows := make([][]string, 0, len(frame.Nodes))
	for _, n := range frame.Nodes {
		id := n.ID
		switch {
		case n.Root:
			id = rootColor.Sprint(id)
		case n.Hovered:
			id = hoverColor.Sprint(id)
		}
		year := "-"
		if n.Year != 0 {
			year = strconv.Itoa(n.Year)
		}
		nodeRows = append(nodeRows, []string{
			id,
			truncateString(n.Title, TableTitleMaxLen),
			year,
			strconv.Itoa(n.Citations),
			strconv.FormatFloat(n.Size, 'f', 1, 64),
			strconv.FormatFloat(n.Opacity, 'f', 2, 64),
		})
	}
	if err := renderTable([]string{"ID", "Title", "Year", "Citations", "Size", "Opacity"}, nodeRows); err != nil {
		return err
	}

	fmt.Println()
	headingColor.Println("Strongest links")
	if err := renderTable([]string{"Source", "Target", "Weighted", "Width", "Distance"},
		linkTableRows(frame.Links, linkRows)); err != nil {
		return err
	}
	return nil
}

// linkTableRows returns up to limit links, strongest first. Filtered links
// are greyed out.
func linkTableRows(links []viz.FrameLink, limit int) [][]string {
	sorted := append([]viz.FrameLink(nil), links...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weighted > sorted[j].Weighted
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	rows := make([][]string, 0, len(sorted))
	for _, l := range sorted {
		weighted := strconv.FormatFloat(l.Weighted, 'f', 3, 64)
		switch {
		case l.Hovered:
			weighted = hoverColor.Sprint(weighted)
		case !l.Visible:
			weighted = hiddenColor.Sprint(weighted)
		}
		rows = append(rows, []string{
			l.Source,
			l.Target,
			weighted,
			strconv.FormatFloat(l.Width, 'f', 2, 64),
			strconv.FormatFloat(l.Distance, 'f', 1, 64),
		})
	}
	return rows
}
