package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/stretchr/testify/require"
)

func TestAdapter_InsertBatch(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	events := []stats.QueryEvent{
		{Path: "/films/3", Route: "/films/:id", LatencyMs: 120, Source: "starwars", OccurredAt: now},
		{Path: "/people/1", Route: "/people/:id", LatencyMs: 80, Source: "starwars", OccurredAt: now.Add(time.Minute)},
	}

	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock)
		assertErr  func(t *testing.T, err error)
	}{
		{
			name: "commits all rows in one transaction",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEvent))
				prep.ExpectExec().
					WithArgs(now, "/films/3", "/films/:id", int64(120), "starwars", 9).
					WillReturnResult(sqlmock.NewResult(1, 1))
				prep.ExpectExec().
					WithArgs(now.Add(time.Minute), "/people/1", "/people/:id", int64(80), "starwars", 9).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
			assertErr: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "failed row rolls back the whole batch",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEvent))
				prep.ExpectExec().
					WithArgs(now, "/films/3", "/films/:id", int64(120), "starwars", 9).
					WillReturnResult(sqlmock.NewResult(1, 1))
				prep.ExpectExec().
					WithArgs(now.Add(time.Minute), "/people/1", "/people/:id", int64(80), "starwars", 9).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			assertErr: func(t *testing.T, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "/people/:id")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			tc.mockResult(mock)

			err := adapter.InsertBatch(context.Background(), events)
			tc.assertErr(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_InsertBatch_EmptyIsNoOp(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	// No transaction expectations: nothing should touch the database.
	require.NoError(t, adapter.InsertBatch(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CountInWindow(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	start := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(queryCountInWindow)).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(17)))

	count, err := adapter.CountInWindow(context.Background(), start, end)
	require.NoError(t, err)
	require.EqualValues(t, 17, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_AverageLatency(t *testing.T) {
	start := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "fractional average", raw: "116.667", want: "116.667"},
		{name: "empty window coalesces to zero", raw: "0", want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta(queryAverageLatency)).
				WithArgs(start, end).
				WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(tc.raw))

			avg, err := adapter.AverageLatency(context.Background(), start, end)
			require.NoError(t, err)
			require.Equal(t, tc.want, avg.String())
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_TopRoutes(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	start := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(queryTopRoutes)).
		WithArgs(start, end, 5).
		WillReturnRows(sqlmock.NewRows([]string{"route", "route_count"}).
			AddRow("/films/:id", int64(2)).
			AddRow("/people/:id", int64(1)))

	routes, err := adapter.TopRoutes(context.Background(), start, end, 5)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	require.Equal(t, "/films/:id", routes[0].Route)
	require.EqualValues(t, 2, routes[0].Count)
	require.Equal(t, "/people/:id", routes[1].Route)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_BusiestHour(t *testing.T) {
	start := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	t.Run("returns the top hour", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(queryBusiestHour)).
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"hour_of_day", "hour_count"}).
				AddRow(7, int64(12)))

		hour, count, err := adapter.BusiestHour(context.Background(), start, end)
		require.NoError(t, err)
		require.Equal(t, 7, hour)
		require.EqualValues(t, 12, count)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window yields zeros without error", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(queryBusiestHour)).
			WithArgs(start, end).
			WillReturnError(sql.ErrNoRows)

		hour, count, err := adapter.BusiestHour(context.Background(), start, end)
		require.NoError(t, err)
		require.Zero(t, hour)
		require.Zero(t, count)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdapter_EarliestEventTime(t *testing.T) {
	t.Run("returns the oldest timestamp", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		earliest := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(queryEarliestEventTime)).
			WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(earliest))

		got, ok, err := adapter.EarliestEventTime(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, got.Equal(earliest))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table reports not found", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(queryEarliestEventTime)).
			WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

		_, ok, err := adapter.EarliestEventTime(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:               db,
		stmtCountWindow:  mustPrepareStmt(t, db, mock, queryCountInWindow),
		stmtAvgLatency:   mustPrepareStmt(t, db, mock, queryAverageLatency),
		stmtTopRoutes:    mustPrepareStmt(t, db, mock, queryTopRoutes),
		stmtBusiestHour:  mustPrepareStmt(t, db, mock, queryBusiestHour),
		stmtEarliestTime: mustPrepareStmt(t, db, mock, queryEarliestEventTime),
	}

	return adapter, mock, db
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)
	return stmt
}
