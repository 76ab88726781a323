package home

import (
	"errors"
	"log/slog"

	"realtor-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// GET /home?city=...&minPrice=...&maxPrice=...&propertyType=...
func ListHomesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := BuildFilter(FilterParams{
			City:         c.Query("city"),
			MinPrice:     c.Query("minPrice"),
			MaxPrice:     c.Query("maxPrice"),
			PropertyType: c.Query("propertyType"),
		})
		if err != nil {
			return httpError(c, err)
		}

		homes, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(homes)
	}
}

// GET /home/:id
func GetHomeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := homeID(c)
		if err != nil {
			return err
		}

		h, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(h)
	}
}

// POST /home
func CreateHomeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateHomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		h, err := svc.Create(c.UserContext(), body, me)
		if err != nil {
			return httpError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(h)
	}
}

// PUT /home/:id
func UpdateHomeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := homeID(c)
		if err != nil {
			return err
		}
		me, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body UpdateHomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		h, err := svc.Update(c.UserContext(), id, body, me)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(h)
	}
}

// DELETE /home/:id
func DeleteHomeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := homeID(c)
		if err != nil {
			return err
		}
		me, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		if err := svc.Delete(c.UserContext(), id, me); err != nil {
			return httpError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /home/:id/inquire
func InquireHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := homeID(c)
		if err != nil {
			return err
		}
		me, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body InquireRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		msg, err := svc.Inquire(c.UserContext(), id, me, body.Message)
		if err != nil {
			return httpError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	}
}

// GET /home/:id/messages
func ListMessagesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := homeID(c)
		if err != nil {
			return err
		}
		me, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		msgs, err := svc.Messages(c.UserContext(), id, me)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(msgs)
	}
}

func homeID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

// httpError converts service errors to fiber errors. Unknown errors are
// logged and hidden behind a 500.
func httpError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidArgument):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}

	slog.ErrorContext(c.UserContext(), "home request failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
}
