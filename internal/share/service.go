package share

import (
	"context"

	"github.com/LittlJoey/pet-tracker-app/internal/db"

	"github.com/google/uuid"
)

// Service records walk share snapshots: the map image rendered by the
// client next to the caption it was shared with.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) SaveSnapshot(ctx context.Context, userID, walkID, imageURL, caption string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO walk_snapshots (id, user_id, walk_id, image_url, caption)
		VALUES ($1,$2,$3,$4,$5)
	`, id, userID, walkID, imageURL, caption)
	if err != nil {
		return "", err
	}
	return id, nil
}
