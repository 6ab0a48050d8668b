package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldSet(sigs ...string) map[string]struct{} {
	return SignatureSet(sigs)
}

func TestSelectCoverage_SingleCandidateCoversAll(t *testing.T) {
	selected, covered := SelectCoverage(
		goldSet("a", "b"),
		[][]string{{"a", "b"}},
	)
	assert.Equal(t, []int{0}, selected)
	assert.Len(t, covered, 2)
}

func TestSelectCoverage_GreedyPicksLargestGainFirst(t *testing.T) {
	selected, covered := SelectCoverage(
		goldSet("a", "b", "c"),
		[][]string{
			{"a"},           // gain 1
			{"b", "c"},      // gain 2: picked first
			{"a", "x", "y"}, // gain 1 after round one
		},
	)
	require.Equal(t, []int{1, 0}, selected)
	assert.Len(t, covered, 3)
}

func TestSelectCoverage_StopsAtZeroGain(t *testing.T) {
	selected, _ := SelectCoverage(
		goldSet("a"),
		[][]string{{"a"}, {"a"}, {"x"}},
	)
	// Second candidate adds nothing; third never matched.
	assert.Equal(t, []int{0}, selected)
}

func TestSelectCoverage_CapAtFour(t *testing.T) {
	selected, covered := SelectCoverage(
		goldSet("a", "b", "c", "d", "e", "f"),
		[][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {"f"}},
	)
	assert.Len(t, selected, MaxSelectedChunks)
	assert.Len(t, covered, MaxSelectedChunks)
}

func TestSelectCoverage_TieBreakKeepsInputOrder(t *testing.T) {
	selected, _ := SelectCoverage(
		goldSet("a", "b"),
		[][]string{{"a"}, {"b"}},
	)
	// Equal gains: first candidate in input order wins each round.
	assert.Equal(t, []int{0, 1}, selected)
}

func TestSelectCoverage_NoCandidates(t *testing.T) {
	selected, covered := SelectCoverage(goldSet("a"), nil)
	assert.Empty(t, selected)
	assert.Empty(t, covered)
}

func TestSelectCoverage_IgnoresSignaturesOutsideGold(t *testing.T) {
	selected, covered := SelectCoverage(
		goldSet("a"),
		[][]string{{"x", "y", "z", "a"}},
	)
	assert.Equal(t, []int{0}, selected)
	assert.Len(t, covered, 1)
}
