// Package store persists evaluation runs so provider comparisons can be
// reviewed after the fact. The engine itself never touches the store;
// saving is a caller concern.
package store

import (
	"context"

	"github.com/sells-group/tableval/internal/model"
)

// RunFilter specifies criteria for listing stored evaluation runs.
type RunFilter struct {
	DocID  string `json:"doc_id,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for evaluation runs.
type Store interface {
	SaveRun(ctx context.Context, docID, source string, result *model.Evaluation) (*model.EvalRun, error)
	GetRun(ctx context.Context, runID string) (*model.EvalRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.EvalRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
