package pet

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

func (s *Service) Create(ctx context.Context, input Pet) (Pet, error) {
	input.ID = uuid.NewString()
	weights, err := json.Marshal(input.WeightHistory)
	if err != nil {
		return Pet{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO pets (id, owner_id, name, species, breed, birth_date, avatar_url, weight_history)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`, input.ID, input.OwnerID, input.Name, input.Species, input.Breed, input.BirthDate, input.AvatarURL, weights)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Pet{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, owner_id, name, species, COALESCE(breed,''), birth_date, COALESCE(avatar_url,''), weight_history, created_at, updated_at
		FROM pets WHERE id=$1
	`, id)

	var p Pet
	var weights []byte
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.Breed, &p.BirthDate, &p.AvatarURL, &weights, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Pet{}, err
	}
	if len(weights) > 0 {
		if err := json.Unmarshal(weights, &p.WeightHistory); err != nil {
			return Pet{}, err
		}
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, name, species, COALESCE(breed,''), birth_date, COALESCE(avatar_url,''), weight_history, created_at, updated_at
		FROM pets WHERE owner_id=$1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []Pet
	for rows.Next() {
		var p Pet
		var weights []byte
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.Breed, &p.BirthDate, &p.AvatarURL, &weights, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if len(weights) > 0 {
			if err := json.Unmarshal(weights, &p.WeightHistory); err != nil {
				return nil, err
			}
		}
		pets = append(pets, p)
	}
	return pets, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Pet) (Pet, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.Species != "" {
		p.Species = patch.Species
	}
	if patch.Breed != "" {
		p.Breed = patch.Breed
	}
	if !patch.BirthDate.IsZero() {
		p.BirthDate = patch.BirthDate
	}
	if patch.AvatarURL != "" {
		p.AvatarURL = patch.AvatarURL
	}
	return s.save(ctx, p)
}

// AddWeight appends a dated weight entry; the latest entry drives the
// walk calorie estimate.
func (s *Service) AddWeight(ctx context.Context, id string, entry WeightEntry) (Pet, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	p.WeightHistory = append(p.WeightHistory, entry)
	return s.save(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM pets WHERE id=$1`, id)
	return err
}

func (s *Service) save(ctx context.Context, p Pet) (Pet, error) {
	weights, err := json.Marshal(p.WeightHistory)
	if err != nil {
		return Pet{}, err
	}
	p.UpdatedAt = time.Now()
	_, err = s.db.Exec(ctx, `
		UPDATE pets
		SET name=$2, species=$3, breed=$4, birth_date=$5, avatar_url=$6, weight_history=$7, updated_at=$8
		WHERE id=$1
	`, p.ID, p.Name, p.Species, p.Breed, p.BirthDate, p.AvatarURL, weights, p.UpdatedAt)
	if err != nil {
		return Pet{}, err
	}
	return p, nil
}
