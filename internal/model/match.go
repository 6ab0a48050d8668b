package model

import "time"

// SelectedElement records one candidate chunk chosen by the coverage
// selector, with its single-candidate quality detail.
type SelectedElement struct {
	ElementID    string  `json:"element_id"`
	PageTrimmed  int     `json:"page_trimmed"`
	PageOriginal int     `json:"page_original"`
	Cohesion     float64 `json:"cohesion"`
	RowOverlap   float64 `json:"row_overlap"`
}

// MatchEntry is the per-gold-table evaluation result. The best_* fields
// reference the single highest-cohesion candidate, chosen independently of
// the greedy selection; it may not appear in SelectedElements and the two
// views are deliberately not reconciled.
type MatchEntry struct {
	DocID        string `json:"doc_id"`
	GoldTableID  string `json:"gold_table_id"`
	GoldTitle    string `json:"gold_title,omitempty"`
	GoldPages    []int  `json:"gold_pages"`
	ExpectedCols int    `json:"expected_cols"`

	SelectedElements []SelectedElement `json:"selected_elements"`

	CoverageRatio      float64 `json:"coverage_ratio"`
	Coverage           float64 `json:"coverage"`
	Cohesion           float64 `json:"cohesion"`
	SelectedChunkCount int     `json:"selected_chunk_count"`
	GoldLeftSize       int     `json:"gold_left_size"`
	CoveredCount       int     `json:"covered_count"`
	ChunkerF1          float64 `json:"chunker_f1"`

	BestElementID    string  `json:"best_element_id,omitempty"`
	BestPageTrimmed  int     `json:"best_page_trimmed,omitempty"`
	BestPageOriginal int     `json:"best_page_original,omitempty"`
	BestCohesion     float64 `json:"best_cohesion,omitempty"`
	BestRowOverlap   float64 `json:"best_row_overlap,omitempty"`
}

// Overall aggregates run-level metrics across all gold tables. Averages are
// macro (per-table mean) except MicroCoverage, which weights each table by
// its gold_left_size.
type Overall struct {
	Tables                int     `json:"tables"`
	AvgCoverage           float64 `json:"avg_coverage"`
	AvgCohesion           float64 `json:"avg_cohesion"`
	AvgChunkerF1          float64 `json:"avg_chunker_f1"`
	AvgSelectedChunkCount float64 `json:"avg_selected_chunk_count"`
	MicroCoverage         float64 `json:"micro_coverage"`
}

// Evaluation is the full output payload of one evaluation run.
type Evaluation struct {
	Matches []MatchEntry `json:"matches"`
	Overall Overall      `json:"overall"`
}

// EvalRun wraps a stored evaluation with its persistence metadata.
type EvalRun struct {
	ID        string      `json:"id"`
	DocID     string      `json:"doc_id"`
	Source    string      `json:"source"`
	Result    *Evaluation `json:"result,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
