package audit

import (
	"strconv"

	"realtor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"before_data"`
	AfterData   string             `json:"after_data"`
}

// GET /admin/audit-logs?entity_type=home&entity_id=1&user_id=5
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := db.WithContext(c.UserContext()).Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		if s := c.Query("entity_id"); s != "" {
			eid, err := strconv.ParseUint(s, 10, 64)
			if err != nil || eid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "entity_id must be a positive integer")
			}
			dbq = dbq.Where("entity_id = ?", eid)
		}

		if s := c.Query("user_id"); s != "" {
			uid, err := strconv.ParseUint(s, 10, 64)
			if err != nil || uid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "user_id must be a positive integer")
			}
			dbq = dbq.Where("user_id = ?", uid)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
			})
		}

		return c.JSON(resp)
	}
}
