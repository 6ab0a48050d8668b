package match

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/tableval/internal/model"
)

// Evaluator scores candidate chunks against a document's gold tables and
// produces the evaluation payload. It holds no mutable state between calls;
// every run is pure over its inputs.
type Evaluator struct {
	parser  GridParser
	workers int
}

// EvaluatorConfig tunes the evaluator. Workers bounds the per-candidate
// detail computation; results are re-serialized into input candidate order
// before selection, so parallelism never changes the outcome.
type EvaluatorConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// NewEvaluator creates an Evaluator. A nil parser selects the default grid
// parser via the startup capability probe.
func NewEvaluator(parser GridParser, cfg EvaluatorConfig) *Evaluator {
	if parser == nil {
		parser = NewGridParser()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Evaluator{parser: parser, workers: workers}
}

// Evaluate runs the full matching pipeline: per gold table it computes
// candidate details, greedily selects a covering subset, and scores the
// result; run-level aggregates close the payload. Candidates whose resolved
// original pages miss the table's declared page set are filtered out before
// any matching.
func (e *Evaluator) Evaluate(ctx context.Context, docID string, tables []model.GoldTable, elements []model.CandidateElement, pages model.PageMap) model.Evaluation {
	eval := model.Evaluation{Matches: make([]model.MatchEntry, 0, len(tables))}

	var sumCoverage, sumCohesion, sumF1, sumSelected float64
	var sumCovered, sumGoldLeft int

	for i := range tables {
		gold := &tables[i]
		entry := e.evaluateTable(ctx, docID, gold, elements, pages)
		eval.Matches = append(eval.Matches, entry)

		sumCoverage += entry.CoverageRatio
		sumCohesion += entry.Cohesion
		sumF1 += entry.ChunkerF1
		sumSelected += float64(entry.SelectedChunkCount)
		sumCovered += entry.CoveredCount
		sumGoldLeft += entry.GoldLeftSize
	}

	n := len(eval.Matches)
	eval.Overall.Tables = n
	if n > 0 {
		eval.Overall.AvgCoverage = sumCoverage / float64(n)
		eval.Overall.AvgCohesion = sumCohesion / float64(n)
		eval.Overall.AvgChunkerF1 = sumF1 / float64(n)
		eval.Overall.AvgSelectedChunkCount = sumSelected / float64(n)
	}
	if sumGoldLeft > 0 {
		eval.Overall.MicroCoverage = float64(sumCovered) / float64(sumGoldLeft)
	} else {
		eval.Overall.MicroCoverage = eval.Overall.AvgCoverage
	}

	return eval
}

func (e *Evaluator) evaluateTable(ctx context.Context, docID string, gold *model.GoldTable, elements []model.CandidateElement, pages model.PageMap) model.MatchEntry {
	entry := model.MatchEntry{
		DocID:            docID,
		GoldTableID:      gold.TableID,
		GoldTitle:        gold.Title,
		GoldPages:        gold.Pages,
		ExpectedCols:     gold.ExpectedCols(),
		SelectedElements: []model.SelectedElement{},
	}

	eligible := eligibleCandidates(gold, elements, pages)
	details := e.computeDetails(ctx, gold, eligible)

	goldSet := SignatureSet(LeftColSignature(gold.Rows))
	entry.GoldLeftSize = len(goldSet)

	candSigs := make([][]string, len(details))
	for i := range details {
		candSigs[i] = details[i].LeftSigs
	}

	selected, covered := SelectCoverage(goldSet, candSigs)
	entry.CoveredCount = len(covered)
	entry.SelectedChunkCount = len(selected)

	for _, idx := range selected {
		el := eligible[idx]
		entry.SelectedElements = append(entry.SelectedElements, model.SelectedElement{
			ElementID:    el.ElementID,
			PageTrimmed:  el.PageTrimmed,
			PageOriginal: pages.FirstOriginal(el.PageTrimmed),
			Cohesion:     details[idx].Cohesion,
			RowOverlap:   details[idx].RowOverlap,
		})
	}

	// A table with no signed gold rows is vacuously covered.
	if entry.GoldLeftSize > 0 {
		entry.CoverageRatio = float64(entry.CoveredCount) / float64(entry.GoldLeftSize)
	} else {
		entry.CoverageRatio = 1.0
	}
	entry.Coverage = entry.CoverageRatio

	// Cohesion measures fragmentation: fewer chunks needed, higher cohesion.
	if entry.SelectedChunkCount > 0 {
		entry.Cohesion = 1.0 / float64(entry.SelectedChunkCount)
	}
	if entry.CoverageRatio > 0 && entry.Cohesion > 0 {
		entry.ChunkerF1 = 2 * entry.CoverageRatio * entry.Cohesion / (entry.CoverageRatio + entry.Cohesion)
	}

	// Best single candidate, independent of the greedy selection. The two
	// views can disagree; both are reported without reconciliation.
	bestIdx := -1
	for i := range details {
		if bestIdx < 0 || details[i].Cohesion > details[bestIdx].Cohesion {
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		best := eligible[bestIdx]
		entry.BestElementID = best.ElementID
		entry.BestPageTrimmed = best.PageTrimmed
		entry.BestPageOriginal = pages.FirstOriginal(best.PageTrimmed)
		entry.BestCohesion = details[bestIdx].Cohesion
		entry.BestRowOverlap = details[bestIdx].RowOverlap

		if ce := zap.L().Check(zap.DebugLevel, "best candidate row alignment"); ce != nil {
			aligned := AlignRows(LeftColSignature(gold.Rows), details[bestIdx].LeftSigs)
			ce.Write(
				zap.String("gold_table_id", gold.TableID),
				zap.String("element_id", best.ElementID),
				zap.Float64("mean_similarity", meanSimilarity(aligned)),
			)
		}
	}

	return entry
}

// computeDetails scores every eligible candidate against the gold table.
// Candidates are independent, so the work fans out over a bounded group,
// but results land at their input index to keep selection order stable.
func (e *Evaluator) computeDetails(ctx context.Context, gold *model.GoldTable, eligible []model.CandidateElement) []Detail {
	details := make([]Detail, len(eligible))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range eligible {
		g.Go(func() error {
			el := &eligible[i]
			details[i] = ComputeDetail(e.parser, gold, el.TextAsHTML, el.ExpectedCols)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return details
}

// eligibleCandidates applies the page pre-filter: when the gold table
// declares source pages, a candidate qualifies only if one of its resolved
// original pages intersects them.
func eligibleCandidates(gold *model.GoldTable, elements []model.CandidateElement, pages model.PageMap) []model.CandidateElement {
	pageSet := gold.PageSet()
	if len(pageSet) == 0 {
		return elements
	}

	eligible := make([]model.CandidateElement, 0, len(elements))
	for _, el := range elements {
		for _, orig := range pages.Original(el.PageTrimmed) {
			if _, ok := pageSet[orig]; ok {
				eligible = append(eligible, el)
				break
			}
		}
	}
	return eligible
}

func meanSimilarity(aligned []RowAlignment) float64 {
	if len(aligned) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range aligned {
		sum += a.Similarity
	}
	return sum / float64(len(aligned))
}
