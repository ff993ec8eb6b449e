package pet

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Pet
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.Species == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and species required")
		}
		req.OwnerID, _ = c.Locals("user_id").(string)
		p, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		ownerID, _ := c.Locals("user_id").(string)
		pets, err := svc.ListByOwner(c.Context(), ownerID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(pets)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		p, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "pet not found")
		}
		return c.JSON(p)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Pet
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/:id/weights", authMiddleware, func(c *fiber.Ctx) error {
		var req WeightEntry
		if err := c.BodyParser(&req); err != nil || req.WeightKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight required")
		}
		p, err := svc.AddWeight(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
