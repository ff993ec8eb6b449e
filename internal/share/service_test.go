package share

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/LittlJoey/pet-tracker-app/internal/walk"

	"github.com/pashagolub/pgxmock/v3"
)

func TestCaption(t *testing.T) {
	s := walk.Session{DistanceMeters: 111.2, ElapsedSeconds: 10}
	caption := Caption("Rex", s)
	for _, want := range []string{
		"Rex just had a wonderful walk!",
		"Distance: 0.11km",
		"Time: 0:10",
		"Pace: 1:29 min/km",
	} {
		if !strings.Contains(caption, want) {
			t.Fatalf("caption missing %q: %q", want, caption)
		}
	}
}

func TestCaptionEmptySession(t *testing.T) {
	caption := Caption("Rex", walk.Session{})
	if !strings.Contains(caption, "Distance: 0.00km") || !strings.Contains(caption, "Pace: 0:00 min/km") {
		t.Fatalf("unexpected caption for empty session: %q", caption)
	}
}

func TestSaveSnapshot(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO walk_snapshots`).
		WithArgs(pgxmock.AnyArg(), "user-1", "walk-1", "https://cdn.example/map.png", "caption").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock)
	id, err := svc.SaveSnapshot(context.Background(), "user-1", "walk-1", "https://cdn.example/map.png", "caption")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if id == "" {
		t.Fatalf("expected id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveSnapshotError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO walk_snapshots`).
		WithArgs(pgxmock.AnyArg(), "user-1", "walk-1", "url", "caption").
		WillReturnError(errors.New("insert failed"))

	svc := NewService(mock)
	if _, err := svc.SaveSnapshot(context.Background(), "user-1", "walk-1", "url", "caption"); err == nil {
		t.Fatalf("expected error")
	}
}
