package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/matsen/simgraph/internal/paper"
	"github.com/matsen/simgraph/internal/source"
)

// Title truncation lengths by context
const (
	TableTitleMaxLen  = 48 // Node tables
	HeaderTitleMaxLen = 72 // Graph summary header
)

var (
	rootColor    = color.New(color.FgRed, color.Bold)
	hoverColor   = color.New(color.FgYellow, color.Bold)
	hiddenColor  = color.New(color.FgHiBlack)
	headingColor = color.New(color.FgCyan, color.Bold)
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// sourceExitCode maps a snapshot loading error to an exit code.
func sourceExitCode(err error) int {
	switch {
	case source.IsNotFound(err):
		return ExitNotFound
	case errors.Is(err, paper.ErrInvalidSnapshot), errors.Is(err, source.ErrInvalidResponse):
		return ExitDataError
	case source.IsRateLimited(err):
		return ExitAPIError
	}
	var apiErr *source.APIError
	if errors.As(err, &apiErr) {
		return ExitAPIError
	}
	return ExitError
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// newTable creates a right-aligned table on w.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

// renderTable writes rows to a new table on stdout.
func renderTable(headers []string, rows [][]string) error {
	table := newTable(os.Stdout, headers...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
