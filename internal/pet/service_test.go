package pet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestLatestWeightKg(t *testing.T) {
	p := Pet{}
	if w := p.LatestWeightKg(); w != 25 {
		t.Fatalf("expected default weight 25, got %v", w)
	}

	p.WeightHistory = []WeightEntry{
		{Date: time.Now().Add(-48 * time.Hour), WeightKg: 20},
		{Date: time.Now(), WeightKg: 22.5},
	}
	if w := p.LatestWeightKg(); w != 22.5 {
		t.Fatalf("expected latest weight 22.5, got %v", w)
	}
}

func TestCreateAndGet(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO pets`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Rex", "dog", "corgi", pgxmock.AnyArg(), "", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	svc := NewService(mock)
	saved, err := svc.Create(context.Background(), Pet{OwnerID: "user-1", Name: "Rex", Species: "dog", Breed: "corgi"})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}

	mock.ExpectQuery(`SELECT id, owner_id, name, species`).
		WithArgs(saved.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "species", "breed", "birth_date", "avatar_url", "weight_history", "created_at", "updated_at"}).
			AddRow(saved.ID, "user-1", "Rex", "dog", "corgi", now, "", []byte(`[{"date":"2024-01-01T00:00:00Z","weight":21}]`), now, now))

	got, err := svc.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get pet: %v", err)
	}
	if got.LatestWeightKg() != 21 {
		t.Fatalf("unexpected weight: %v", got.LatestWeightKg())
	}
}

func TestAddWeightAppends(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, owner_id, name, species`).
		WithArgs("pet-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "species", "breed", "birth_date", "avatar_url", "weight_history", "created_at", "updated_at"}).
			AddRow("pet-1", "user-1", "Rex", "dog", "", now, "", []byte(`[]`), now, now))

	mock.ExpectExec(`UPDATE pets`).
		WithArgs("pet-1", "Rex", "dog", "", pgxmock.AnyArg(), "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock)
	p, err := svc.AddWeight(context.Background(), "pet-1", WeightEntry{WeightKg: 23})
	if err != nil {
		t.Fatalf("add weight: %v", err)
	}
	if p.LatestWeightKg() != 23 {
		t.Fatalf("expected new weight to be latest, got %v", p.LatestWeightKg())
	}
	if p.WeightHistory[0].Date.IsZero() {
		t.Fatalf("expected date to default to now")
	}
}

func TestListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, owner_id, name, species`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "species", "breed", "birth_date", "avatar_url", "weight_history", "created_at", "updated_at"}).
			AddRow("pet-1", "user-1", "Rex", "dog", "", now, "", []byte(`[]`), now, now).
			AddRow("pet-2", "user-1", "Misu", "cat", "", now, "", []byte(`[]`), now, now))

	svc := NewService(mock)
	pets, err := svc.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list pets: %v", err)
	}
	if len(pets) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(pets))
	}
}

func TestGetError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, owner_id, name, species`).
		WithArgs("missing").
		WillReturnError(errPet)

	svc := NewService(mock)
	if _, err := svc.Get(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}

var errPet = errors.New("pet error")
