package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tableval/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testEvaluation() *model.Evaluation {
	return &model.Evaluation{
		Matches: []model.MatchEntry{{
			DocID:              "d1",
			GoldTableID:        "t1",
			GoldPages:          []int{1},
			CoverageRatio:      1.0,
			Coverage:           1.0,
			Cohesion:           0.5,
			ChunkerF1:          2 * 1.0 * 0.5 / 1.5,
			SelectedChunkCount: 2,
			GoldLeftSize:       2,
			CoveredCount:       2,
			SelectedElements:   []model.SelectedElement{{ElementID: "e1", PageTrimmed: 1, PageOriginal: 1}},
		}},
		Overall: model.Overall{Tables: 1, AvgCoverage: 1.0, AvgCohesion: 0.5, MicroCoverage: 1.0},
	}
}

func TestSQLiteStore_SaveAndGetRun(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := s.SaveRun(ctx, "d1", "annual.pdf", testEvaluation())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "d1", got.DocID)
	assert.Equal(t, "annual.pdf", got.Source)
	require.NotNil(t, got.Result)
	require.Len(t, got.Result.Matches, 1)
	assert.Equal(t, "t1", got.Result.Matches[0].GoldTableID)
	assert.InDelta(t, 0.5, got.Result.Overall.AvgCohesion, 1e-9)
}

func TestSQLiteStore_GetRun_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	assert.Error(t, err)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.SaveRun(ctx, "d1", "a.pdf", testEvaluation())
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, "d2", "b.pdf", testEvaluation())
	require.NoError(t, err)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := s.ListRuns(ctx, RunFilter{DocID: "d2"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "d2", filtered[0].DocID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStore_MigrateIdempotent(t *testing.T) {
	s := newTestSQLiteStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}
