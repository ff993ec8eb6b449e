package share

import (
	"context"
	"errors"

	"github.com/LittlJoey/pet-tracker-app/internal/pet"
	"github.com/LittlJoey/pet-tracker-app/internal/walk"

	"github.com/gofiber/fiber/v2"
)

// WalkSource exposes the session snapshot of an active or stopped walk.
type WalkSource interface {
	Snapshot(walkID string) (walk.Session, error)
}

type PetGetter interface {
	Get(ctx context.Context, id string) (pet.Pet, error)
}

func RegisterRoutes(r fiber.Router, svc *Service, walks WalkSource, pets PetGetter, authMiddleware fiber.Handler) {
	r.Post("/walks/:id", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ImageURL string `json:"image_url"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		session, err := walks.Snapshot(c.Params("id"))
		if err != nil {
			if errors.Is(err, walk.ErrWalkNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		owner, err := pets.Get(c.Context(), session.PetID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "pet not found")
		}

		caption := Caption(owner.Name, session)
		userID, _ := c.Locals("user_id").(string)
		id, err := svc.SaveSnapshot(c.Context(), userID, session.ID, body.ImageURL, caption)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        id,
			"caption":   caption,
			"image_url": body.ImageURL,
		})
	})
}
