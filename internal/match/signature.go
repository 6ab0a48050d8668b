package match

import "strings"

// LeftColSignature maps each row to the normalized text of its first cell.
// Rows with no cells are skipped entirely, so the result may be shorter than
// the row list. An empty string means the row has a first cell with no
// comparable text; set-based comparisons exclude it.
func LeftColSignature(rows [][]string) []string {
	sigs := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		sigs = append(sigs, Normalize(row[0]))
	}
	return sigs
}

// SignatureSet collapses a signature sequence into a set, dropping the
// empty "no signature" marker.
func SignatureSet(sigs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(sigs))
	for _, s := range sigs {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// JaccardOverlap treats both sequences as sets and returns their Jaccard
// index: 1.0 when both are empty, 0.0 when exactly one is, |∩|/|∪| otherwise.
func JaccardOverlap(a, b []string) float64 {
	setA := SignatureSet(a)
	setB := SignatureSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// RowSimilarity scores a gold row signature against a candidate row
// signature: 1.0 on equality, 0.7 when one contains the other, else the
// Jaccard overlap of their whitespace token sets.
func RowSimilarity(gold, cand string) float64 {
	if gold == cand {
		return 1.0
	}
	if gold != "" && cand != "" &&
		(strings.Contains(gold, cand) || strings.Contains(cand, gold)) {
		return 0.7
	}
	return JaccardOverlap(strings.Fields(gold), strings.Fields(cand))
}

// RowsMatch is the loose predicate used by row-span search: exact equality
// or substring containment in either direction.
func RowsMatch(a, b string) bool {
	if a == b {
		return a != ""
	}
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// RowAlignment records, for one gold row, the best-matching candidate row.
// Diagnostic only; selection does not consume it.
type RowAlignment struct {
	CandIndex  int     `json:"cand_index"`
	Similarity float64 `json:"similarity"`
}

// AlignRows maps each gold row signature to its best candidate row by
// RowSimilarity. Ties keep the first-seen maximum. A gold row with no
// candidate rows at all gets index -1.
func AlignRows(goldSigs, candSigs []string) []RowAlignment {
	aligned := make([]RowAlignment, len(goldSigs))
	for i, g := range goldSigs {
		best := RowAlignment{CandIndex: -1}
		for j, c := range candSigs {
			if sim := RowSimilarity(g, c); best.CandIndex == -1 || sim > best.Similarity {
				best = RowAlignment{CandIndex: j, Similarity: sim}
			}
		}
		aligned[i] = best
	}
	return aligned
}
