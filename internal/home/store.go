package home

import (
	"context"
	"errors"
	"fmt"

	"realtor-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence gateway for homes, images and messages.
type Store interface {
	FindHomes(ctx context.Context, f Filter) ([]models.Home, error)
	FindHome(ctx context.Context, id uint) (*models.Home, error)
	RealtorIDByHomeID(ctx context.Context, id uint) (uint, error)
	CreateHome(ctx context.Context, home *models.Home) error
	CreateImages(ctx context.Context, images []models.Image) error
	UpdateHome(ctx context.Context, id uint, columns map[string]any) (*models.Home, error)
	DeleteHome(ctx context.Context, id uint) error
	CreateMessage(ctx context.Context, msg *models.Message) error
	FindMessagesByHome(ctx context.Context, homeID uint) ([]models.Message, error)

	// SaveUser mirrors an authenticated identity into users, keyed by id.
	SaveUser(ctx context.Context, user *models.User) error

	// Transaction runs fn against a Store bound to one database transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func imagesByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func filterScope(f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.City != nil {
			db = db.Where("city = ?", *f.City)
		}
		if f.Price != nil {
			if f.Price.Gte != nil {
				db = db.Where("price >= ?", *f.Price.Gte)
			}
			if f.Price.Lte != nil {
				db = db.Where("price <= ?", *f.Price.Lte)
			}
		}
		if f.PropertyType != nil {
			db = db.Where("property_type = ?", string(*f.PropertyType))
		}
		return db
	}
}

// firstImage limits a preload to the lowest-id image of each home.
func firstImage(db *gorm.DB) *gorm.DB {
	first := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Image{}).
		Select("MIN(id)").
		Group("home_id")
	return db.Where("id IN (?)", first)
}

// FindHomes loads the matching homes with only their first image, which is
// all the list view shows.
func (s *GormStore) FindHomes(ctx context.Context, f Filter) ([]models.Home, error) {
	var homes []models.Home
	err := s.db.WithContext(ctx).
		Scopes(filterScope(f)).
		Preload("Images", firstImage).
		Order("id ASC").
		Find(&homes).Error
	if err != nil {
		return nil, fmt.Errorf("listing homes: %w", err)
	}
	return homes, nil
}

func (s *GormStore) FindHome(ctx context.Context, id uint) (*models.Home, error) {
	var h models.Home
	err := s.db.WithContext(ctx).
		Preload("Images", imagesByID).
		Preload("Realtor").
		First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading home %d: %w", id, err)
	}
	return &h, nil
}

func (s *GormStore) RealtorIDByHomeID(ctx context.Context, id uint) (uint, error) {
	var h models.Home
	err := s.db.WithContext(ctx).Select("id", "realtor_id").First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("loading realtor of home %d: %w", id, err)
	}
	return h.RealtorID, nil
}

func (s *GormStore) SaveUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "user_type", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("saving user %d: %w", user.ID, err)
	}
	return nil
}

func (s *GormStore) CreateHome(ctx context.Context, home *models.Home) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(home).Error
}

func (s *GormStore) CreateImages(ctx context.Context, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&images).Error
}

func (s *GormStore) UpdateHome(ctx context.Context, id uint, columns map[string]any) (*models.Home, error) {
	if len(columns) > 0 {
		res := s.db.WithContext(ctx).Model(&models.Home{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return nil, fmt.Errorf("updating home %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindHome(ctx, id)
}

// DeleteHome removes the home together with its images and messages.
func (s *GormStore) DeleteHome(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("home_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("deleting messages of home %d: %w", id, err)
		}
		if err := tx.Where("home_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return fmt.Errorf("deleting images of home %d: %w", id, err)
		}
		res := tx.Delete(&models.Home{}, id)
		if res.Error != nil {
			return fmt.Errorf("deleting home %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *GormStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(msg).Error
}

func (s *GormStore) FindMessagesByHome(ctx context.Context, homeID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Preload("Buyer").
		Where("home_id = ?", homeID).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("listing messages of home %d: %w", homeID, err)
	}
	return msgs, nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
