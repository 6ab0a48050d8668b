// Package geometry reconstructs the bounding sub-box of a partial table
// chunk by aligning its rows against the full original table and slicing
// the original box proportionally.
package geometry

import (
	"strings"

	"github.com/sells-group/tableval/internal/match"
	"github.com/sells-group/tableval/internal/model"
)

// Reconstructor aligns chunk rows against original table rows and slices
// bounding boxes. Pure; safe for concurrent use.
type Reconstructor struct {
	parser match.GridParser
}

// NewReconstructor creates a Reconstructor. A nil parser selects the default
// grid parser.
func NewReconstructor(parser match.GridParser) *Reconstructor {
	if parser == nil {
		parser = match.NewGridParser()
	}
	return &Reconstructor{parser: parser}
}

// Reconstruct computes the sub-box of box corresponding to the chunk's row
// range within the original table. Any precondition failure (no table markup
// in the chunk, a degenerate box, empty row lists, an unmatchable span)
// yields (nil, false) rather than an error; callers fall back to the chunk's
// own full bounding box.
func (r *Reconstructor) Reconstruct(originalHTML string, box model.BoundingBox, chunkHTML string) (*model.RowSegment, bool) {
	if !strings.Contains(strings.ToLower(chunkHTML), "<table") {
		return nil, false
	}
	if box.H <= 0 || box.W < 0 {
		return nil, false
	}

	origRows := r.flattenRows(originalHTML)
	chunkRows := r.flattenRows(chunkHTML)
	if len(origRows) == 0 || len(chunkRows) == 0 {
		return nil, false
	}

	span, ok := FindRowSpan(origRows, chunkRows)
	if !ok {
		return nil, false
	}

	sliced, ok := SliceBox(box, span, RowWeights(origRows))
	if !ok {
		return nil, false
	}
	return &model.RowSegment{Box: sliced, Span: span}, true
}

// flattenRows reduces each parsed table row to a single normalized string.
func (r *Reconstructor) flattenRows(fragment string) []string {
	grid := r.parser.Parse(fragment)
	rows := make([]string, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		rows = append(rows, match.Normalize(strings.Join(row, " ")))
	}
	return rows
}

// RowWeights assigns each row a weight of max(len(text), 1). Box height is
// apportioned by weight, approximating real rendering where denser rows take
// more vertical space; exact per-row heights are not known.
func RowWeights(rows []string) []float64 {
	weights := make([]float64, len(rows))
	for i, row := range rows {
		w := len(row)
		if w < 1 {
			w = 1
		}
		weights[i] = float64(w)
	}
	return weights
}

// FindRowSpan locates the chunk's rows inside the original row list. It
// tries an exact contiguous run first; failing that it anchors on the
// chunk's first row and extends to the first match of the chunk's last row
// at or after the anchor, clamping to anchor+len(chunk) when the last row
// never matches. That clamp is a best-effort approximation with no
// correctness guarantee for reordered or heavily reworded chunks.
func FindRowSpan(origRows, chunkRows []string) (model.RowSpan, bool) {
	total := len(origRows)
	span := model.RowSpan{Total: total}
	if total == 0 || len(chunkRows) == 0 {
		return span, false
	}

	// Exact contiguous run.
	for offset := 0; offset+len(chunkRows) <= total; offset++ {
		if runMatches(origRows, chunkRows, offset) {
			span.Start = offset
			span.End = offset + len(chunkRows)
			return span, true
		}
	}

	// Anchor on the first chunk row.
	anchor := -1
	for i, row := range origRows {
		if match.RowsMatch(row, chunkRows[0]) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return span, false
	}

	if len(chunkRows) == 1 {
		span.Start = anchor
		span.End = anchor + 1
		return span, true
	}

	last := chunkRows[len(chunkRows)-1]
	end := -1
	for j := anchor; j < total; j++ {
		if match.RowsMatch(origRows[j], last) {
			end = j + 1
			break
		}
	}
	if end < 0 {
		end = anchor + len(chunkRows)
		if end > total {
			end = total
		}
	}

	if end <= anchor {
		return span, false
	}
	span.Start = anchor
	span.End = end
	return span, true
}

func runMatches(origRows, chunkRows []string, offset int) bool {
	for i, row := range chunkRows {
		if !match.RowsMatch(origRows[offset+i], row) {
			return false
		}
	}
	return true
}

// SliceBox cuts the vertical segment of box covered by span, apportioning
// height by per-row weight. Degenerate weights (wrong length or non-positive
// sum) fall back to uniform row heights. A non-positive resulting height or
// an out-of-range span yields false.
func SliceBox(box model.BoundingBox, span model.RowSpan, weights []float64) (model.BoundingBox, bool) {
	if span.Total <= 0 || span.Start < 0 || span.End > span.Total || span.End <= span.Start {
		return model.BoundingBox{}, false
	}

	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if len(weights) != span.Total || totalWeight <= 0 {
		weights = make([]float64, span.Total)
		for i := range weights {
			weights[i] = 1
		}
		totalWeight = float64(span.Total)
	}

	cumStart, cumEnd := 0.0, 0.0
	for i := 0; i < span.End; i++ {
		if i < span.Start {
			cumStart += weights[i]
		}
		cumEnd += weights[i]
	}

	sliced := box
	sliced.Y = box.Y + box.H*(cumStart/totalWeight)
	sliced.H = box.H * (cumEnd - cumStart) / totalWeight
	if sliced.H <= 0 {
		return model.BoundingBox{}, false
	}
	return sliced, true
}
