package walk

import (
	"errors"

	"github.com/LittlJoey/pet-tracker-app/internal/location"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, m *Manager, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req StartRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.PetID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "pet_id required")
		}
		req.UserID, _ = c.Locals("user_id").(string)

		id, tier, err := m.StartWalk(c.Context(), req)
		if err != nil {
			return startError(tier, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"walk_id": id, "tier": tier})
	})

	r.Post("/:id/positions", authMiddleware, func(c *fiber.Ctx) error {
		var req location.Position
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := m.ReportPosition(c.Params("id"), req); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/:id/permissions/background", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Granted bool `json:"granted"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		tier, err := m.UpgradeBackground(c.Context(), c.Params("id"), body.Granted)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(fiber.Map{"tier": tier})
	})

	r.Get("/:id/live", authMiddleware, func(c *fiber.Ctx) error {
		stats, err := m.Live(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(stats)
	})

	r.Post("/:id/stop", authMiddleware, func(c *fiber.Ctx) error {
		session, err := m.StopWalk(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(session)
	})

	r.Post("/:id/finish", authMiddleware, func(c *fiber.Ctx) error {
		result, err := m.FinishWalk(c.Context(), c.Params("id"))
		if err != nil {
			return finishError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	r.Post("/:id/discard", authMiddleware, func(c *fiber.Ctx) error {
		if err := m.DiscardWalk(c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func startError(tier location.Tier, err error) error {
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return fiber.NewError(fiber.StatusForbidden, "location permission denied")
	case errors.Is(err, location.ErrUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "location unavailable")
	default:
		var stateErr *StateError
		if errors.As(err, &stateErr) {
			return fiber.NewError(fiber.StatusConflict, stateErr.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func finishError(err error) error {
	switch {
	case errors.Is(err, ErrWalkNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoData):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "no walk data to save")
	default:
		var saveErr *SaveError
		if errors.As(err, &saveErr) {
			return fiber.NewError(fiber.StatusBadGateway, saveErr.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
