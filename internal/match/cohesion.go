package match

import (
	"math"

	"github.com/sells-group/tableval/internal/model"
)

// Detail is the ephemeral per gold-table × candidate match detail.
type Detail struct {
	Cohesion   float64    `json:"cohesion"`
	RowOverlap float64    `json:"row_overlap"`
	Header     []string   `json:"cand_header,omitempty"`
	Rows       [][]string `json:"cand_rows,omitempty"`
	LeftSigs   []string   `json:"cand_left_sig,omitempty"`
}

// colPenaltyRate is the cohesion cost per column of deviation from the
// expected column count.
const colPenaltyRate = 0.05

// ComputeDetail parses a candidate's HTML fragment and scores it against one
// gold table. Cohesion is the row-signature Jaccard overlap minus a penalty
// for column-count deviation when expectedCols is known, clamped to [0,1].
// This is the single-candidate estimate; it knows nothing about coverage
// across multiple candidates.
func ComputeDetail(parser GridParser, gold *model.GoldTable, candidateHTML string, expectedCols int) Detail {
	grid := parser.Parse(candidateHTML)

	leftSigs := LeftColSignature(grid.Rows)
	goldSigs := LeftColSignature(gold.Rows)

	rowOverlap := JaccardOverlap(goldSigs, leftSigs)

	penalty := 0.0
	if expectedCols > 0 {
		observed := maxRowWidth(grid)
		penalty = colPenaltyRate * math.Abs(float64(observed-expectedCols))
	}

	return Detail{
		Cohesion:   clamp01(rowOverlap - penalty),
		RowOverlap: rowOverlap,
		Header:     grid.Header,
		Rows:       grid.Rows,
		LeftSigs:   leftSigs,
	}
}

func maxRowWidth(grid Grid) int {
	max := len(grid.Header)
	for _, row := range grid.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
