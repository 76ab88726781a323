package auth

import (
	"realtor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /auth/me
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := db.WithContext(c.UserContext()).First(&user, me.UserID).Error; err == nil {
			return c.JSON(fiber.Map{
				"id":       user.ID,
				"name":     user.Name,
				"email":    user.Email,
				"phone":    user.Phone,
				"userType": user.UserType,
			})
		}

		// not mirrored locally yet, answer from the token
		return c.JSON(fiber.Map{
			"id":       me.UserID,
			"name":     me.Name,
			"email":    me.Email,
			"userType": me.Role,
		})
	}
}
