package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/tableval/internal/model"
)

func TestComputeDetail_PerfectMatch(t *testing.T) {
	gold := testGoldTable()
	html := `<table><tr><td>A</td><td>1</td></tr><tr><td>B</td><td>2</td></tr></table>`

	d := ComputeDetail(StructuredParser{}, &gold, html, 2)
	assert.InDelta(t, 1.0, d.RowOverlap, 1e-9)
	assert.InDelta(t, 1.0, d.Cohesion, 1e-9)
	assert.Equal(t, []string{"a", "b"}, d.LeftSigs)
}

func TestComputeDetail_ColumnPenalty(t *testing.T) {
	gold := testGoldTable()
	// Same rows padded to four columns: overlap stays 1.0, two extra
	// columns cost 0.1.
	html := `<table><tr><td>A</td><td>1</td><td>x</td><td>y</td></tr><tr><td>B</td><td>2</td><td>x</td><td>y</td></tr></table>`

	d := ComputeDetail(StructuredParser{}, &gold, html, 2)
	assert.InDelta(t, 1.0, d.RowOverlap, 1e-9)
	assert.InDelta(t, 0.9, d.Cohesion, 1e-9)
}

func TestComputeDetail_UnknownExpectedColsSkipsPenalty(t *testing.T) {
	gold := testGoldTable()
	html := `<table><tr><td>A</td><td>1</td><td>x</td><td>y</td></tr><tr><td>B</td><td>2</td><td>x</td><td>y</td></tr></table>`

	d := ComputeDetail(StructuredParser{}, &gold, html, 0)
	assert.InDelta(t, 1.0, d.Cohesion, 1e-9)
}

func TestComputeDetail_ClampsAtZero(t *testing.T) {
	gold := testGoldTable()
	// No row overlap and a wildly wrong column count.
	html := `<table><tr><td>X</td><td>1</td><td>2</td><td>3</td><td>4</td><td>5</td></tr></table>`

	d := ComputeDetail(StructuredParser{}, &gold, html, 2)
	assert.Equal(t, 0.0, d.Cohesion)
	assert.Equal(t, 0.0, d.RowOverlap)
}

func TestComputeDetail_NoTableHTML(t *testing.T) {
	gold := model.GoldTable{Rows: [][]string{{"A"}}}

	d := ComputeDetail(StructuredParser{}, &gold, "plain text, no markup", 0)
	assert.Equal(t, 0.0, d.RowOverlap)
	assert.Equal(t, 0.0, d.Cohesion)
	assert.Empty(t, d.LeftSigs)
}
