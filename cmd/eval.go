package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tableval/internal/candidate"
	"github.com/sells-group/tableval/internal/gold"
	"github.com/sells-group/tableval/internal/match"
	"github.com/sells-group/tableval/internal/report"
)

var (
	evalGold     string
	evalElements string
	evalSource   string
	evalDocID    string
	evalPageMap  string
	evalOutput   string
	evalFormat   string
	evalSave     bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate candidate chunks against gold tables",
	Long: `Scores how well a set of candidate chunks reconstructs the gold tables of
one document. Gold and candidate inputs are line-delimited JSON.

Examples:
  # Evaluate one document, JSON payload to stdout
  tableval eval --gold gold.jsonl --elements chunks.jsonl --source report.pdf

  # Explicit gold document, CSV report to a file
  tableval eval --gold gold.jsonl --elements chunks.jsonl --doc-id d42 \
    --format csv --output matches.csv

  # Trimmed working document: map pages back to the original
  tableval eval --gold gold.jsonl --elements chunks.jsonl --source report.pdf \
    --page-map pages.json --save`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalGold, "gold", "", "gold dataset file (JSONL)")
	f.StringVar(&evalElements, "elements", "", "candidate elements file (JSONL)")
	f.StringVar(&evalSource, "source", "", "input source identifier to resolve against gold")
	f.StringVar(&evalDocID, "doc-id", "", "explicit gold document id (overrides source resolution)")
	f.StringVar(&evalPageMap, "page-map", "", "trimmed-to-original page mapping file (JSON)")
	f.StringVar(&evalOutput, "output", "", "output file path (default: stdout)")
	f.StringVar(&evalFormat, "format", "json", "output format: json, csv, or xlsx")
	f.BoolVar(&evalSave, "save", false, "persist the run to the configured store")
	_ = evalCmd.MarkFlagRequired("gold")
	_ = evalCmd.MarkFlagRequired("elements")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "eval"))

	dataset, err := gold.LoadFile(evalGold)
	if err != nil {
		return err
	}

	docID, tables := dataset.Resolve(evalSource, evalDocID)
	if docID == "" {
		log.Warn("no gold document resolved for input",
			zap.String("source", evalSource),
			zap.String("doc_id", evalDocID),
		)
	}

	elements, err := candidate.ReadFile(evalElements)
	if err != nil {
		return err
	}

	pages, err := candidate.LoadPageMap(evalPageMap)
	if err != nil {
		return err
	}

	evaluator := match.NewEvaluator(nil, match.EvaluatorConfig{Workers: cfg.Eval.Workers})
	eval := evaluator.Evaluate(ctx, docID, tables, elements, pages)

	log.Info("evaluation complete",
		zap.String("doc_id", docID),
		zap.Int("gold_tables", eval.Overall.Tables),
		zap.Int("candidates", len(elements)),
		zap.Float64("avg_chunker_f1", eval.Overall.AvgChunkerF1),
		zap.Float64("micro_coverage", eval.Overall.MicroCoverage),
	)

	if evalSave {
		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.SaveRun(ctx, docID, evalSource, &eval)
		if err != nil {
			return err
		}
		log.Info("run saved", zap.String("run_id", run.ID))
	}

	switch evalFormat {
	case "xlsx":
		if evalOutput == "" {
			return eris.New("eval: xlsx format requires --output")
		}
		return report.WriteXLSX(evalOutput, &eval)
	case "csv", "json":
		out := os.Stdout
		if evalOutput != "" {
			f, err := os.Create(evalOutput)
			if err != nil {
				return eris.Wrapf(err, "eval: create %s", evalOutput)
			}
			defer f.Close()
			out = f
		}
		if evalFormat == "csv" {
			return report.WriteCSV(out, &eval)
		}
		return report.WriteJSON(out, &eval)
	default:
		return eris.Errorf("eval: unknown format %q", evalFormat)
	}
}
