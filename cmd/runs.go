package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tabfuse/tabfuse/db"
)

func init() {
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs <run-id>...",
	Short: "Fetches persisted run summaries",
	Long:  `Fetches persisted run summaries by id (up to 10)`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("Need at least 1 run id...")
		}
		summaries := db.GetRunSummaries(args)
		for _, runId := range args {
			summary, ok := summaries[runId]
			if !ok {
				fmt.Printf("%v: not found\n", runId)
				continue
			}
			fmt.Printf("%v: input=%v notes=%v avg_conf=%.2f corrections=%v\n",
				summary.RunId, summary.Input, summary.TotalNotes,
				summary.AverageConfidence, summary.Corrections)
		}
	},
}
