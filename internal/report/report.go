// Package report renders evaluation results for humans and downstream
// tooling: canonical JSON, a flat CSV of per-table matches, and an XLSX
// workbook with a summary sheet.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tableval/internal/model"
)

// WriteJSON writes the canonical evaluation payload.
func WriteJSON(w io.Writer, eval *model.Evaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(eval), "report: encode json")
}

var csvHeader = []string{
	"doc_id", "gold_table_id", "gold_title", "gold_pages", "expected_cols",
	"coverage_ratio", "cohesion", "chunker_f1",
	"selected_chunk_count", "gold_left_size", "covered_count",
	"selected_element_ids", "best_element_id", "best_cohesion",
}

// WriteCSV writes one row per gold table.
func WriteCSV(w io.Writer, eval *model.Evaluation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}

	for _, m := range eval.Matches {
		ids := make([]string, 0, len(m.SelectedElements))
		for _, sel := range m.SelectedElements {
			ids = append(ids, sel.ElementID)
		}

		record := []string{
			m.DocID,
			m.GoldTableID,
			m.GoldTitle,
			joinInts(m.GoldPages),
			strconv.Itoa(m.ExpectedCols),
			formatFloat(m.CoverageRatio),
			formatFloat(m.Cohesion),
			formatFloat(m.ChunkerF1),
			strconv.Itoa(m.SelectedChunkCount),
			strconv.Itoa(m.GoldLeftSize),
			strconv.Itoa(m.CoveredCount),
			strings.Join(ids, ";"),
			m.BestElementID,
			formatFloat(m.BestCohesion),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ";")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
