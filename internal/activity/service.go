package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LittlJoey/pet-tracker-app/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Activity) (Activity, error) {
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	if input.ActivityDate.IsZero() {
		input.ActivityDate = time.Now()
	}
	meta, err := marshalMetadata(input.Metadata)
	if err != nil {
		return Activity{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO pet_activities (id, pet_id, user_id, type, title, description, duration, distance, calories, activity_date, metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at
	`, input.ID, input.PetID, input.UserID, input.Type, input.Title, input.Description,
		input.DurationMinutes, input.DistanceKm, input.Calories, input.ActivityDate, meta)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Activity{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Activity, error) {
	row := s.db.QueryRow(ctx, selectColumns+` FROM pet_activities WHERE id=$1`, id)
	return scanActivity(row)
}

func (s *Service) ListByPet(ctx context.Context, petID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, selectColumns+`
		FROM pet_activities
		WHERE pet_id=$1
		ORDER BY activity_date DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Today returns the pet's activities inside the current local day.
func (s *Service) Today(ctx context.Context, petID, userID string) ([]Activity, error) {
	start, end := dayWindow(time.Now())
	rows, err := s.db.Query(ctx, selectColumns+`
		FROM pet_activities
		WHERE pet_id=$1 AND user_id=$2 AND activity_date >= $3 AND activity_date < $4
		ORDER BY activity_date DESC
	`, petID, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Stats reduces today's activities into dashboard totals: walk count,
// walked distance, meal count, and the overall activity count.
func (s *Service) Stats(ctx context.Context, petID, userID string) (Stats, error) {
	start, end := dayWindow(time.Now())
	rows, err := s.db.Query(ctx, `
		SELECT type, COALESCE(distance, 0)
		FROM pet_activities
		WHERE pet_id=$1 AND user_id=$2 AND activity_date >= $3 AND activity_date < $4
	`, petID, userID, start, end)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var kind string
		var distance float64
		if err := rows.Scan(&kind, &distance); err != nil {
			return Stats{}, err
		}
		stats.TotalActivities++
		switch kind {
		case TypeWalk:
			stats.TotalWalks++
			stats.TotalDistanceKm += distance
		case TypeMeal:
			stats.TotalMeals++
		}
	}
	return stats, nil
}

func (s *Service) Update(ctx context.Context, input Activity) (Activity, error) {
	meta, err := marshalMetadata(input.Metadata)
	if err != nil {
		return Activity{}, err
	}
	input.UpdatedAt = time.Now()
	_, err = s.db.Exec(ctx, `
		UPDATE pet_activities
		SET type=$2, title=$3, description=$4, duration=$5, distance=$6, calories=$7, activity_date=$8, metadata=$9, updated_at=$10
		WHERE id=$1
	`, input.ID, input.Type, input.Title, input.Description, input.DurationMinutes,
		input.DistanceKm, input.Calories, input.ActivityDate, meta, input.UpdatedAt)
	if err != nil {
		return Activity{}, err
	}
	return input, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM pet_activities WHERE id=$1`, id)
	return err
}

const selectColumns = `
	SELECT id, pet_id, user_id, type, title, COALESCE(description,''), COALESCE(duration,0), COALESCE(distance,0), COALESCE(calories,0), activity_date, metadata, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
}

func collect(rows rowsScanner) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}

func scanActivity(row rowScanner) (Activity, error) {
	var a Activity
	var meta []byte
	if err := row.Scan(&a.ID, &a.PetID, &a.UserID, &a.Type, &a.Title, &a.Description,
		&a.DurationMinutes, &a.DistanceKm, &a.Calories, &a.ActivityDate, &meta, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Activity{}, err
	}
	if len(meta) > 0 {
		a.Metadata = &Metadata{}
		if err := json.Unmarshal(meta, a.Metadata); err != nil {
			return Activity{}, err
		}
	}
	return a, nil
}

func marshalMetadata(m *Metadata) (any, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
