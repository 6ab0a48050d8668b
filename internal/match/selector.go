package match

// MaxSelectedChunks caps how many candidates the coverage selector may pick
// per gold table.
const MaxSelectedChunks = 4

// SelectCoverage greedily picks up to MaxSelectedChunks candidate indices
// whose union of left-column signatures maximizes coverage of goldSet.
// Each round selects the candidate with the strictly largest marginal gain
// (new gold signatures not yet covered); ties keep the first candidate in
// input order, so upstream ordering is load-bearing for reproducibility.
// Selection stops when the best gain drops to zero.
//
// Returns the selected indices in selection order and the covered signature
// set.
func SelectCoverage(goldSet map[string]struct{}, candSigs [][]string) ([]int, map[string]struct{}) {
	covered := make(map[string]struct{})
	remaining := make([]bool, len(candSigs))
	for i := range remaining {
		remaining[i] = true
	}

	var selected []int
	for len(selected) < MaxSelectedChunks {
		bestIdx, bestGain := -1, 0
		for i, sigs := range candSigs {
			if !remaining[i] {
				continue
			}
			gain := marginalGain(goldSet, covered, sigs)
			if gain > bestGain {
				bestIdx, bestGain = i, gain
			}
		}
		if bestIdx < 0 {
			break
		}

		remaining[bestIdx] = false
		selected = append(selected, bestIdx)
		for _, s := range candSigs[bestIdx] {
			if s == "" {
				continue
			}
			if _, ok := goldSet[s]; ok {
				covered[s] = struct{}{}
			}
		}
	}

	return selected, covered
}

// marginalGain counts the candidate signatures that are in the gold set but
// not yet covered.
func marginalGain(goldSet, covered map[string]struct{}, sigs []string) int {
	gain := 0
	seen := make(map[string]struct{}, len(sigs))
	for _, s := range sigs {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := goldSet[s]; !ok {
			continue
		}
		if _, ok := covered[s]; ok {
			continue
		}
		gain++
	}
	return gain
}
