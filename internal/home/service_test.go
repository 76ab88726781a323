package home

import (
	"context"
	"testing"

	"realtor-backend/internal/auth"
	"realtor-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	realtor53 = auth.Identity{UserID: 53, Name: "Laith", Email: "laith@example.com", Role: models.UserRealtor}
	realtor30 = auth.Identity{UserID: 30, Name: "Other", Email: "other@example.com", Role: models.UserRealtor}
	buyer7    = auth.Identity{UserID: 7, Name: "Buyer", Email: "buyer@example.com", Role: models.UserBuyer}
)

func torontoHome() models.Home {
	return models.Home{
		ID:                5,
		Address:           "2345 William Str",
		NumberOfBedrooms:  3,
		NumberOfBathrooms: 2.5,
		City:              "Toronto",
		Price:             1500000,
		LandSize:          4444,
		PropertyType:      models.PropertyResidential,
		RealtorID:         53,
		Images:            []models.Image{{ID: 1, URL: "img1", HomeID: 5}, {ID: 2, URL: "img2", HomeID: 5}},
	}
}

func newTestService() (*Service, *fakeStore, *fakeAuditor) {
	store := newFakeStore()
	store.add(torontoHome())
	auditor := &fakeAuditor{}
	return NewService(store, auditor), store, auditor
}

func TestServiceList(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	city := "Toronto"
	homes, err := svc.List(ctx, Filter{City: &city})
	require.NoError(t, err)
	require.Len(t, homes, 1)
	assert.Equal(t, toHomeResponse(torontoHome()), homes[0])
	assert.Equal(t, "img1", homes[0].Image)

	nowhere := "Nowhere"
	homes, err = svc.List(ctx, Filter{City: &nowhere})
	assert.ErrorIs(t, err, ErrNotFound, "empty result is an error, not an empty list")
	assert.Nil(t, homes)
}

func TestServiceGet(t *testing.T) {
	svc, _, _ := newTestService()

	h, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, h.Images, 2)

	_, err = svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceCreateWritesHomeThenImages(t *testing.T) {
	store := newFakeStore()
	auditor := &fakeAuditor{}
	svc := NewService(store, auditor)

	req := CreateHomeRequest{
		Address:           "111 yellow Str",
		NumberOfBedrooms:  2,
		NumberOfBathrooms: 2,
		City:              "Vancouver",
		LandSize:          4444,
		PropertyType:      models.PropertyResidential,
		Price:             3000000,
		Images:            []ImageRequest{{URL: "src1"}},
	}
	realtor5 := auth.Identity{UserID: 5, Name: "Mike", Role: models.UserRealtor}

	resp, err := svc.Create(context.Background(), req, realtor5)
	require.NoError(t, err)

	require.Len(t, store.createdHomes, 1)
	created := store.createdHomes[0]
	assert.Equal(t, "111 yellow Str", created.Address)
	assert.Equal(t, 2, created.NumberOfBedrooms)
	assert.Equal(t, 2.0, created.NumberOfBathrooms)
	assert.Equal(t, "Vancouver", created.City)
	assert.Equal(t, 4444.0, created.LandSize)
	assert.Equal(t, models.PropertyResidential, created.PropertyType)
	assert.Equal(t, 3000000.0, created.Price)
	assert.Equal(t, uint(5), created.RealtorID)

	require.Len(t, store.createdImages, 1)
	assert.Equal(t, []models.Image{{URL: "src1", HomeID: resp.ID}}, store.createdImages[0])
	assert.NotZero(t, resp.ID)
	assert.Equal(t, 1, store.transactions, "home and images share one transaction")

	assert.Equal(t, []ImageResponse{{URL: "src1"}}, resp.Images)
	assert.Equal(t, []models.User{{ID: 5, Name: "Mike", UserType: models.UserRealtor}}, store.savedUsers)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, models.AuditActionCreate, auditor.entries[0].Action)
	assert.Equal(t, resp.ID, auditor.entries[0].EntityID)
	assert.Equal(t, "Mike", auditor.entries[0].UserName)
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateHomeRequest{Address: "x"}, realtor53)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, store.createdHomes)
}

func TestServiceCreateImageFailure(t *testing.T) {
	store := newFakeStore()
	store.imagesErr = errBoom
	svc := NewService(store, nil)

	req := CreateHomeRequest{
		Address: "a", NumberOfBedrooms: 1, NumberOfBathrooms: 1, City: "c",
		Price: 1, LandSize: 1, PropertyType: models.PropertyCondo,
		Images: []ImageRequest{{URL: "u"}},
	}
	_, err := svc.Create(context.Background(), req, realtor53)
	assert.ErrorIs(t, err, errBoom)
}

func TestServiceUpdateOwnership(t *testing.T) {
	svc, store, auditor := newTestService()
	ctx := context.Background()
	price := 1750000.0

	_, err := svc.Update(ctx, 5, UpdateHomeRequest{Price: &price}, realtor30)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, store.updates, "nothing written for a non-owner")

	updated, err := svc.Update(ctx, 5, UpdateHomeRequest{Price: &price}, realtor53)
	require.NoError(t, err)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, []map[string]any{{"price": price}}, store.updates)

	require.Len(t, auditor.entries, 1)
	before := auditor.entries[0].Before.(HomeResponse)
	assert.Equal(t, 1500000.0, before.Price)

	_, err = svc.Update(ctx, 404, UpdateHomeRequest{Price: &price}, realtor53)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceUpdateInvalidPatch(t *testing.T) {
	svc, store, _ := newTestService()
	zero := 0.0

	_, err := svc.Update(context.Background(), 5, UpdateHomeRequest{LandSize: &zero}, realtor53)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, store.updates)
}

func TestServiceDelete(t *testing.T) {
	svc, store, auditor := newTestService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 5, realtor30), ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(ctx, 404, realtor53), ErrNotFound)
	assert.Empty(t, store.deleted)

	require.NoError(t, svc.Delete(ctx, 5, realtor53))
	assert.Equal(t, []uint{5}, store.deleted)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "delete", string(auditor.entries[0].Action))
	assert.Nil(t, auditor.entries[0].After)
}

func TestServiceInquire(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	msg, err := svc.Inquire(ctx, 5, buyer7, "  Is the basement finished?  ")
	require.NoError(t, err)
	assert.Equal(t, "Is the basement finished?", msg.Message)
	assert.Equal(t, uint(5), msg.HomeID)

	require.Len(t, store.messages, 1)
	assert.Equal(t, uint(53), store.messages[0].RealtorID)
	assert.Equal(t, uint(7), store.messages[0].BuyerID)

	_, err = svc.Inquire(ctx, 404, buyer7, "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Inquire(ctx, 5, buyer7, "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestServiceMessages(t *testing.T) {
	svc, store, _ := newTestService()
	store.users[7] = &models.User{ID: 7, Name: "Buyer", Email: "buyer@example.com", Phone: "555"}
	ctx := context.Background()

	_, err := svc.Inquire(ctx, 5, buyer7, "hello")
	require.NoError(t, err)

	_, err = svc.Messages(ctx, 5, realtor30)
	assert.ErrorIs(t, err, ErrUnauthorized)

	msgs, err := svc.Messages(ctx, 5, realtor53)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Buyer)
	assert.Equal(t, BuyerResponse{Name: "Buyer", Email: "buyer@example.com", Phone: "555"}, *msgs[0].Buyer)
}

func TestServiceAuditFailureDoesNotFailRequest(t *testing.T) {
	store := newFakeStore()
	store.add(torontoHome())
	svc := NewService(store, &fakeAuditor{err: errBoom})

	assert.NoError(t, svc.Delete(context.Background(), 5, realtor53))
}

func TestServiceSavesActingUser(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Inquire(ctx, 5, buyer7, "hello")
	require.NoError(t, err)
	assert.Equal(t, []models.User{{ID: 7, Name: "Buyer", Email: "buyer@example.com", UserType: models.UserBuyer}}, store.savedUsers)

	store.usersErr = errBoom
	_, err = svc.Inquire(ctx, 5, buyer7, "again")
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, store.messages, 1, "no message without its sender row")

	_, err = svc.Create(ctx, CreateHomeRequest{
		Address: "a", NumberOfBedrooms: 1, NumberOfBathrooms: 1, City: "c",
		Price: 1, LandSize: 1, PropertyType: models.PropertyCondo,
		Images: []ImageRequest{{URL: "u"}},
	}, realtor53)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, store.createdHomes)
}
