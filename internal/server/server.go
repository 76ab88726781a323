package server

import (
	"errors"
	"log/slog"
	"strings"

	"realtor-backend/internal/audit"
	"realtor-backend/internal/auth"
	"realtor-backend/internal/config"
	"realtor-backend/internal/home"
	"realtor-backend/internal/logging"
	"realtor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

// New builds the fiber app with every route registered.
func New(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(logging.RequestLogger())

	homes := home.NewService(home.NewGormStore(db), audit.NewWriter(db))

	authed := auth.JWTMiddleware(cfg.JWTSecret)
	realtorOnly := auth.RequireRole(models.UserRealtor)
	buyerOnly := auth.RequireRole(models.UserBuyer)
	adminOnly := auth.RequireRole(models.UserAdmin)

	app.Get("/health", healthHandler(db))

	// Public
	app.Get("/home", home.ListHomesHandler(homes))
	app.Get("/home/:id", home.GetHomeHandler(homes))

	// Realtor
	app.Post("/home", authed, realtorOnly, home.CreateHomeHandler(homes))
	app.Put("/home/:id", authed, realtorOnly, home.UpdateHomeHandler(homes))
	app.Delete("/home/:id", authed, realtorOnly, home.DeleteHomeHandler(homes))
	app.Get("/home/:id/messages", authed, realtorOnly, home.ListMessagesHandler(homes))

	// Buyer
	app.Post("/home/:id/inquire", authed, buyerOnly, home.InquireHandler(homes))

	app.Get("/auth/me", authed, auth.MeHandler(db))

	adminRoutes := app.Group("/admin", authed, adminOnly)
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	slog.ErrorContext(c.UserContext(), "unexpected error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "unexpected server error",
	})
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
