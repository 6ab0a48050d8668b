package report

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/tableval/internal/model"
)

// WriteXLSX writes an XLSX workbook with a Matches sheet and an Overall
// summary sheet.
func WriteXLSX(path string, eval *model.Evaluation) error {
	file := xlsx.NewFile()

	matches, err := file.AddSheet("Matches")
	if err != nil {
		return eris.Wrap(err, "report: add matches sheet")
	}

	header := matches.AddRow()
	for _, col := range csvHeader {
		header.AddCell().Value = col
	}

	for _, m := range eval.Matches {
		ids := make([]string, 0, len(m.SelectedElements))
		for _, sel := range m.SelectedElements {
			ids = append(ids, sel.ElementID)
		}

		row := matches.AddRow()
		row.AddCell().Value = m.DocID
		row.AddCell().Value = m.GoldTableID
		row.AddCell().Value = m.GoldTitle
		row.AddCell().Value = joinInts(m.GoldPages)
		row.AddCell().SetInt(m.ExpectedCols)
		row.AddCell().SetFloat(m.CoverageRatio)
		row.AddCell().SetFloat(m.Cohesion)
		row.AddCell().SetFloat(m.ChunkerF1)
		row.AddCell().SetInt(m.SelectedChunkCount)
		row.AddCell().SetInt(m.GoldLeftSize)
		row.AddCell().SetInt(m.CoveredCount)
		row.AddCell().Value = strings.Join(ids, ";")
		row.AddCell().Value = m.BestElementID
		row.AddCell().SetFloat(m.BestCohesion)
	}

	overall, err := file.AddSheet("Overall")
	if err != nil {
		return eris.Wrap(err, "report: add overall sheet")
	}
	for _, kv := range []struct {
		key   string
		value float64
	}{
		{"tables", float64(eval.Overall.Tables)},
		{"avg_coverage", eval.Overall.AvgCoverage},
		{"avg_cohesion", eval.Overall.AvgCohesion},
		{"avg_chunker_f1", eval.Overall.AvgChunkerF1},
		{"avg_selected_chunk_count", eval.Overall.AvgSelectedChunkCount},
		{"micro_coverage", eval.Overall.MicroCoverage},
	} {
		row := overall.AddRow()
		row.AddCell().Value = kv.key
		row.AddCell().SetFloat(kv.value)
	}

	return eris.Wrapf(file.Save(path), "report: save %s", path)
}
