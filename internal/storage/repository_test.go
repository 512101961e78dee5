package storage

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/smartinvest/internal/domain/models"
	pq "github.com/lib/pq"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*snapshotRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &snapshotRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

var insertRegex = regexp.MustCompile(`INSERT INTO analysis_snapshots \(id, symbol, action, confidence, score, overall_sentiment, price, created_at\)`)

func TestRecord_SQLMock(t *testing.T) {
	at := time.Date(2025, 9, 12, 14, 0, 0, 0, time.UTC)
	price := 190.5
	sentiment := 0.25

	cases := []struct {
		name     string
		snap     models.Snapshot
		args     []driver.Value
		execErr  error
		wantErr  bool
		wantCode string
	}{
		{
			name: "full snapshot",
			snap: models.Snapshot{ID: "id-1", Symbol: "AAPL", Action: models.ActionBuy, Confidence: 0.8, Score: 3,
				OverallSentiment: &sentiment, Price: &price, CreatedAt: at},
			args: []driver.Value{"id-1", "AAPL", "Buy", 0.8, 3, 0.25, 190.5, at},
		},
		{
			name: "nullable fields as NULL",
			snap: models.Snapshot{ID: "id-2", Symbol: "MSFT", Action: models.ActionHold, Confidence: 0.4, CreatedAt: at},
			args: []driver.Value{"id-2", "MSFT", "Hold", 0.4, 0, nil, nil, at},
		},
		{
			name:    "driver error",
			snap:    models.Snapshot{ID: "id-3", Symbol: "TSLA", Action: models.ActionSell, CreatedAt: at},
			args:    []driver.Value{"id-3", "TSLA", "Sell", 0.0, 0, nil, nil, at},
			execErr: dummyErr{},
			wantErr: true,
		},
		{
			name:     "unique violation",
			snap:     models.Snapshot{ID: "id-1", Symbol: "AAPL", Action: models.ActionBuy, CreatedAt: at},
			args:     []driver.Value{"id-1", "AAPL", "Buy", 0.0, 0, nil, nil, at},
			execErr:  &pq.Error{Code: "23505", Message: "duplicate key"},
			wantErr:  true,
			wantCode: "unique_violation",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			exp := mock.ExpectExec(insertRegex.String()).WithArgs(tc.args...)
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Record(context.Background(), tc.snap)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if tc.wantCode != "" && !regexp.MustCompile(tc.wantCode).MatchString(err.Error()) {
					t.Fatalf("want %q in error, got %v", tc.wantCode, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestList_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	newer := time.Date(2025, 9, 13, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "symbol", "action", "confidence", "score", "overall_sentiment", "price", "created_at"}).
		AddRow("b", "AAPL", "Sell", 0.7, -3, -0.4, 180.0, newer).
		AddRow("a", "AAPL", "Buy", 0.8, 3, nil, nil, older)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_snapshots")).
		WithArgs("AAPL", 5).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 snapshots, got %d", len(out))
	}
	if out[0].ID != "b" || out[0].Action != models.ActionSell || out[0].Price == nil || *out[0].Price != 180 {
		t.Fatalf("unexpected first snapshot %+v", out[0])
	}
	if out[1].OverallSentiment != nil || out[1].Price != nil {
		t.Fatalf("NULL columns must scan to nil, got %+v", out[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_LimitBounds(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, defaultListLimit},
		{"negative", -1, defaultListLimit},
		{"capped", 1000, maxListLimit},
		{"as given", 7, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_snapshots")).
				WithArgs("AAPL", tc.want).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			out, err := repo.List(context.Background(), "AAPL", tc.limit)
			if err != nil || out == nil || len(out) != 0 {
				t.Fatalf("want empty non-nil slice, got out=%v err=%v", out, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestList_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_snapshots")).WillReturnError(dummyErr{})
	if _, err := repo.List(context.Background(), "AAPL", 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewSnapshotRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewSnapshotRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}
