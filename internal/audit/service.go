package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"realtor-backend/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Writer persists audit entries.
type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

func (w *Writer) WriteLog(ctx context.Context, opts LogOptions) error {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := w.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("saving audit log: %w", err)
	}
	return nil
}

// snapshot encodes v as JSON, "null" when v is nil or not encodable.
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
