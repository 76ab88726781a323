package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"realtor-backend/internal/audit"
	"realtor-backend/internal/auth"
	"realtor-backend/internal/models"
)

const auditEntity = "home"

type Auditor interface {
	WriteLog(ctx context.Context, opts audit.LogOptions) error
}

// Service implements the home operations on top of a Store.
type Service struct {
	store Store
	guard *Guard
	audit Auditor
}

// NewService wires a Service. auditor may be nil.
func NewService(store Store, auditor Auditor) *Service {
	return &Service{
		store: store,
		guard: NewGuard(store),
		audit: auditor,
	}
}

// List returns the homes matching f. No match is reported as ErrNotFound,
// not as an empty list.
func (s *Service) List(ctx context.Context, f Filter) ([]HomeResponse, error) {
	homes, err := s.store.FindHomes(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(homes) == 0 {
		return nil, ErrNotFound
	}

	resp := make([]HomeResponse, 0, len(homes))
	for _, h := range homes {
		resp = append(resp, toHomeResponse(h))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id uint) (HomeResponse, error) {
	h, err := s.store.FindHome(ctx, id)
	if err != nil {
		return HomeResponse{}, err
	}
	return toHomeDetailResponse(*h), nil
}

// Create stores the home and its images in one transaction, owned by
// realtor. The realtor's users row is refreshed from the token first.
func (s *Service) Create(ctx context.Context, req CreateHomeRequest, realtor auth.Identity) (HomeResponse, error) {
	if err := req.validate(); err != nil {
		return HomeResponse{}, err
	}

	home, images := req.record(realtor.UserID)
	err := s.store.Transaction(ctx, func(tx Store) error {
		owner := realtor.User()
		if err := tx.SaveUser(ctx, &owner); err != nil {
			return err
		}
		if err := tx.CreateHome(ctx, &home); err != nil {
			return fmt.Errorf("creating home: %w", err)
		}
		for i := range images {
			images[i].HomeID = home.ID
		}
		if err := tx.CreateImages(ctx, images); err != nil {
			return fmt.Errorf("creating images of home %d: %w", home.ID, err)
		}
		return nil
	})
	if err != nil {
		return HomeResponse{}, err
	}

	home.Images = images
	resp := toHomeDetailResponse(home)

	s.writeAudit(ctx, realtor, models.AuditActionCreate, home.ID,
		fmt.Sprintf("Home listed: %s, %s", home.Address, home.City), nil, resp)
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateHomeRequest, actor auth.Identity) (HomeResponse, error) {
	if err := s.guard.Authorize(ctx, id, actor.UserID); err != nil {
		return HomeResponse{}, err
	}
	if err := req.validate(); err != nil {
		return HomeResponse{}, err
	}

	before, err := s.store.FindHome(ctx, id)
	if err != nil {
		return HomeResponse{}, err
	}

	updated, err := s.store.UpdateHome(ctx, id, req.columns())
	if err != nil {
		return HomeResponse{}, err
	}

	resp := toHomeDetailResponse(*updated)
	s.writeAudit(ctx, actor, models.AuditActionUpdate, id,
		fmt.Sprintf("Home updated: %s", updated.Address), toHomeDetailResponse(*before), resp)
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id uint, actor auth.Identity) error {
	if err := s.guard.Authorize(ctx, id, actor.UserID); err != nil {
		return err
	}

	before, err := s.store.FindHome(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteHome(ctx, id); err != nil {
		return err
	}

	s.writeAudit(ctx, actor, models.AuditActionDelete, id,
		fmt.Sprintf("Home removed: %s", before.Address), toHomeDetailResponse(*before), nil)
	return nil
}

// Inquire records a buyer message addressed to the home's realtor.
func (s *Service) Inquire(ctx context.Context, id uint, buyer auth.Identity, message string) (MessageResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return MessageResponse{}, invalidArgument("message must not be empty")
	}

	realtorID, err := s.store.RealtorIDByHomeID(ctx, id)
	if err != nil {
		return MessageResponse{}, err
	}

	msg := models.Message{
		Message:   message,
		HomeID:    id,
		RealtorID: realtorID,
		BuyerID:   buyer.UserID,
	}
	err = s.store.Transaction(ctx, func(tx Store) error {
		sender := buyer.User()
		if err := tx.SaveUser(ctx, &sender); err != nil {
			return err
		}
		if err := tx.CreateMessage(ctx, &msg); err != nil {
			return fmt.Errorf("creating message for home %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return MessageResponse{}, err
	}
	return toMessageResponse(msg), nil
}

// Messages lists the inquiries on a home. Only its realtor may read them.
func (s *Service) Messages(ctx context.Context, id uint, actor auth.Identity) ([]MessageResponse, error) {
	if err := s.guard.Authorize(ctx, id, actor.UserID); err != nil {
		return nil, err
	}

	msgs, err := s.store.FindMessagesByHome(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, toMessageResponse(m))
	}
	return resp, nil
}

func (s *Service) writeAudit(ctx context.Context, actor auth.Identity, action models.AuditAction, homeID uint, description string, before, after any) {
	if s.audit == nil {
		return
	}
	err := s.audit.WriteLog(ctx, audit.LogOptions{
		UserID:      actor.UserID,
		UserName:    actor.Name,
		EntityType:  auditEntity,
		EntityID:    homeID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
	if err != nil {
		slog.WarnContext(ctx, "audit log could not be written", "home_id", homeID, "action", action, "error", err)
	}
}
