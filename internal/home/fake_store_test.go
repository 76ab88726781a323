package home

import (
	"context"
	"errors"
	"time"

	"realtor-backend/internal/audit"
	"realtor-backend/internal/models"
)

// fakeStore is an in-memory Store that records the calls it receives.
type fakeStore struct {
	homes    map[uint]*models.Home
	users    map[uint]*models.User
	messages []models.Message
	nextID   uint

	createdHomes  []models.Home
	createdImages [][]models.Image
	updates       []map[string]any
	deleted       []uint
	ownerLookups  int
	transactions  int

	savedUsers []models.User

	imagesErr error
	usersErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{homes: map[uint]*models.Home{}, users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeStore) add(h models.Home) {
	if h.ID >= f.nextID {
		f.nextID = h.ID + 1
	}
	f.homes[h.ID] = &h
}

func (f *fakeStore) FindHomes(_ context.Context, flt Filter) ([]models.Home, error) {
	var out []models.Home
	for id := uint(1); id < f.nextID; id++ {
		h, ok := f.homes[id]
		if !ok {
			continue
		}
		if flt.City != nil && h.City != *flt.City {
			continue
		}
		if flt.Price != nil {
			if flt.Price.Gte != nil && h.Price < *flt.Price.Gte {
				continue
			}
			if flt.Price.Lte != nil && h.Price > *flt.Price.Lte {
				continue
			}
		}
		if flt.PropertyType != nil && h.PropertyType != *flt.PropertyType {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeStore) FindHome(_ context.Context, id uint) (*models.Home, error) {
	h, ok := f.homes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (f *fakeStore) RealtorIDByHomeID(_ context.Context, id uint) (uint, error) {
	f.ownerLookups++
	h, ok := f.homes[id]
	if !ok {
		return 0, ErrNotFound
	}
	return h.RealtorID, nil
}

func (f *fakeStore) CreateHome(_ context.Context, home *models.Home) error {
	f.createdHomes = append(f.createdHomes, *home)
	home.ID = f.nextID
	home.ListedDate = time.Now()
	f.add(*home)
	return nil
}

func (f *fakeStore) CreateImages(_ context.Context, images []models.Image) error {
	if f.imagesErr != nil {
		return f.imagesErr
	}
	f.createdImages = append(f.createdImages, append([]models.Image(nil), images...))
	return nil
}

func (f *fakeStore) UpdateHome(ctx context.Context, id uint, columns map[string]any) (*models.Home, error) {
	f.updates = append(f.updates, columns)
	h, ok := f.homes[id]
	if !ok {
		return nil, ErrNotFound
	}
	for col, v := range columns {
		switch col {
		case "address":
			h.Address = v.(string)
		case "city":
			h.City = v.(string)
		case "price":
			h.Price = v.(float64)
		case "land_size":
			h.LandSize = v.(float64)
		case "number_of_bedrooms":
			h.NumberOfBedrooms = v.(int)
		case "number_of_bathroooms":
			h.NumberOfBathrooms = v.(float64)
		case "property_type":
			h.PropertyType = models.PropertyType(v.(string))
		}
	}
	return f.FindHome(ctx, id)
}

func (f *fakeStore) DeleteHome(_ context.Context, id uint) error {
	if _, ok := f.homes[id]; !ok {
		return ErrNotFound
	}
	delete(f.homes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) CreateMessage(_ context.Context, msg *models.Message) error {
	msg.ID = uint(len(f.messages) + 1)
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeStore) FindMessagesByHome(_ context.Context, homeID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.HomeID == homeID {
			m.Buyer = f.users[m.BuyerID]
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveUser(_ context.Context, user *models.User) error {
	if f.usersErr != nil {
		return f.usersErr
	}
	u := *user
	if old, ok := f.users[u.ID]; ok {
		u.Phone = old.Phone
	}
	f.users[u.ID] = &u
	f.savedUsers = append(f.savedUsers, u)
	return nil
}

func (f *fakeStore) Transaction(_ context.Context, fn func(tx Store) error) error {
	f.transactions++
	return fn(f)
}

type fakeAuditor struct {
	entries []audit.LogOptions
	err     error
}

func (a *fakeAuditor) WriteLog(_ context.Context, opts audit.LogOptions) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, opts)
	return nil
}

var errBoom = errors.New("boom")
