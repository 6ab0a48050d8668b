package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tableval/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tableval",
	Short: "Table extraction evaluation engine",
	Long:  "Evaluates how well candidate chunks from a document-layout extraction provider reconstruct hand-labeled gold tables, and reconstructs row-span geometry for overlay visualization.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
