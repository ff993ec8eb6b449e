package track

import (
	"context"
	"encoding/json"

	"github.com/LittlJoey/pet-tracker-app/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Create inserts a track record. The caller may supply the id so the
// activity written alongside can reference it; a missing id is
// generated.
func (s *Service) Create(ctx context.Context, input Track) (Track, error) {
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	points, err := json.Marshal(input.Points)
	if err != nil {
		return Track{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO pet_tracks (id, pet_id, user_id, track_date, location, duration, distance)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.PetID, input.UserID, input.TrackDate, points, input.DurationSeconds, input.DistanceMeters)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Track{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Track, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, pet_id, user_id, track_date, location, duration, distance, created_at
		FROM pet_tracks WHERE id=$1
	`, id)
	return scanTrack(row)
}

func (s *Service) ListByPet(ctx context.Context, petID, userID string) ([]Track, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, pet_id, user_id, track_date, location, duration, distance, created_at
		FROM pet_tracks
		WHERE pet_id=$1 AND user_id=$2
		ORDER BY track_date DESC
	`, petID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Track, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, pet_id, user_id, track_date, location, duration, distance, created_at
		FROM pet_tracks
		WHERE user_id=$1
		ORDER BY track_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM pet_tracks WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (Track, error) {
	var t Track
	var points []byte
	if err := row.Scan(&t.ID, &t.PetID, &t.UserID, &t.TrackDate, &points, &t.DurationSeconds, &t.DistanceMeters, &t.CreatedAt); err != nil {
		return Track{}, err
	}
	if len(points) > 0 {
		if err := json.Unmarshal(points, &t.Points); err != nil {
			return Track{}, err
		}
	}
	return t, nil
}
