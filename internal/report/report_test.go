package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tableval/internal/model"
)

func reportFixture() *model.Evaluation {
	return &model.Evaluation{
		Matches: []model.MatchEntry{
			{
				DocID:              "d1",
				GoldTableID:        "t1",
				GoldTitle:          "Revenue",
				GoldPages:          []int{1, 2},
				ExpectedCols:       3,
				CoverageRatio:      0.75,
				Coverage:           0.75,
				Cohesion:           0.5,
				ChunkerF1:          0.6,
				SelectedChunkCount: 2,
				GoldLeftSize:       4,
				CoveredCount:       3,
				SelectedElements: []model.SelectedElement{
					{ElementID: "e1", PageTrimmed: 1, PageOriginal: 1, Cohesion: 0.9},
					{ElementID: "e2", PageTrimmed: 2, PageOriginal: 2, Cohesion: 0.8},
				},
				BestElementID: "e1",
				BestCohesion:  0.9,
			},
			{
				DocID:       "d1",
				GoldTableID: "t2",
				GoldPages:   []int{},
			},
		},
		Overall: model.Overall{
			Tables:                2,
			AvgCoverage:           0.375,
			AvgCohesion:           0.25,
			AvgChunkerF1:          0.3,
			AvgSelectedChunkCount: 1,
			MicroCoverage:         0.75,
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, reportFixture()))

	var decoded model.Evaluation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Matches, 2)
	assert.Equal(t, "t1", decoded.Matches[0].GoldTableID)
	assert.InDelta(t, 0.375, decoded.Overall.AvgCoverage, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, reportFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, "d1", row[0])
	assert.Equal(t, "t1", row[1])
	assert.Equal(t, "1;2", row[3])
	assert.Equal(t, "0.7500", row[5])
	assert.Equal(t, "e1;e2", row[11])
	assert.Equal(t, "e1", row[12])

	// Empty table still produces a full-width row.
	assert.Len(t, records[2], len(csvHeader))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, reportFixture()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "", joinInts(nil))
	assert.Equal(t, "7", joinInts([]int{7}))
	assert.Equal(t, "1;2;3", joinInts([]int{1, 2, 3}))
}
