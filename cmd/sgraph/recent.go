package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// RecentResponse is the response for the recent command.
type RecentResponse struct {
	Papers []string `json:"papers"`
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently graphed papers, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		db := mustOpenState(cfg)
		defer db.Close()

		ids, err := db.RecentPapers()
		if err != nil {
			exitWithError(ExitError, "reading recent papers: %v", err)
		}
		if ids == nil {
			ids = []string{}
		}

		if !humanOutput {
			outputJSON(RecentResponse{Papers: ids})
			return
		}
		if len(ids) == 0 {
			fmt.Println("No recent papers.")
			return
		}
		rows := make([][]string, 0, len(ids))
		for i, id := range ids {
			rows = append(rows, []string{strconv.Itoa(i + 1), id})
		}
		if err := renderTable([]string{"#", "Paper"}, rows); err != nil {
			exitWithError(ExitError, "rendering table: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
