package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/tableval/internal/store"
)

var (
	runsDocID string
	runsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored evaluation runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored evaluation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(ctx, store.RunFilter{DocID: runsDocID, Limit: runsLimit})
		if err != nil {
			return err
		}

		for _, run := range runs {
			tables := 0
			f1 := 0.0
			if run.Result != nil {
				tables = run.Result.Overall.Tables
				f1 = run.Result.Overall.AvgChunkerF1
			}
			fmt.Printf("%s  %-20s  tables=%d  avg_f1=%.3f  %s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.DocID, tables, f1, run.ID)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one stored evaluation run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	runsListCmd.Flags().StringVar(&runsDocID, "doc-id", "", "filter by gold document id")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 50, "maximum number of runs")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
