package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeftColSignature(t *testing.T) {
	rows := [][]string{
		{"Total Revenue", "100"},
		{},                // no cells: skipped entirely
		{"  ", "empty first cell"},
		{"Net—Income", "42"},
	}
	sigs := LeftColSignature(rows)
	require.Len(t, sigs, 3)
	assert.Equal(t, []string{"total revenue", "", "net-income"}, sigs)
}

func TestJaccardOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1.0},
		{"one empty", []string{"a"}, nil, 0.0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1.0},
		{"half", []string{"a"}, []string{"a", "b"}, 0.5},
		{"disjoint", []string{"a"}, []string{"b"}, 0.0},
		{"duplicates collapse", []string{"a", "a"}, []string{"a"}, 1.0},
		{"empty sigs excluded", []string{"", "a"}, []string{"a", ""}, 1.0},
		{"only empty sigs is empty set", []string{""}, []string{""}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JaccardOverlap(tt.a, tt.b), 1e-9)
		})
	}
}

func TestJaccardOverlap_Symmetry(t *testing.T) {
	pairs := [][2][]string{
		{{"a", "b"}, {"b", "c"}},
		{{"x"}, {}},
		{{"a", "b", "c"}, {"a"}},
	}
	for _, pair := range pairs {
		assert.Equal(t, JaccardOverlap(pair[0], pair[1]), JaccardOverlap(pair[1], pair[0]))
	}
}

func TestRowSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, RowSimilarity("total revenue", "total revenue"))
	assert.Equal(t, 0.7, RowSimilarity("total revenue", "revenue"))
	assert.Equal(t, 0.7, RowSimilarity("revenue", "total revenue"))
	// Token overlap tier: {net, income} vs {income, tax} -> 1/3.
	assert.InDelta(t, 1.0/3.0, RowSimilarity("net income", "income tax"), 1e-9)
	assert.Equal(t, 0.0, RowSimilarity("alpha", "beta"))
}

func TestRowsMatch(t *testing.T) {
	assert.True(t, RowsMatch("total revenue 100", "total revenue 100"))
	assert.True(t, RowsMatch("total revenue 100", "revenue"))
	assert.True(t, RowsMatch("revenue", "total revenue 100"))
	assert.False(t, RowsMatch("alpha", "beta"))
	assert.False(t, RowsMatch("", ""))
	assert.False(t, RowsMatch("a", ""))
}

func TestAlignRows(t *testing.T) {
	goldSigs := []string{"alpha", "beta", "gamma"}
	candSigs := []string{"beta", "alpha"}

	aligned := AlignRows(goldSigs, candSigs)
	require.Len(t, aligned, 3)

	assert.Equal(t, 1, aligned[0].CandIndex)
	assert.Equal(t, 1.0, aligned[0].Similarity)
	assert.Equal(t, 0, aligned[1].CandIndex)
	assert.Equal(t, 1.0, aligned[1].Similarity)
	// No good match: first-seen maximum wins the tie at 0.
	assert.Equal(t, 0, aligned[2].CandIndex)
	assert.Equal(t, 0.0, aligned[2].Similarity)
}

func TestAlignRows_NoCandidates(t *testing.T) {
	aligned := AlignRows([]string{"a"}, nil)
	require.Len(t, aligned, 1)
	assert.Equal(t, -1, aligned[0].CandIndex)
}
