package home

import (
	"strings"
	"time"

	"realtor-backend/internal/models"
)

// homeColumns maps every writable external field name to its column.
var homeColumns = map[string]string{
	"address":            "address",
	"numberOfBedrooms":   "number_of_bedrooms",
	"numberOfBathroooms": "number_of_bathroooms",
	"city":               "city",
	"price":              "price",
	"landSize":           "land_size",
	"propertyType":       "property_type",
}

// -------------------------
// Request/Response Types
// -------------------------

type ImageRequest struct {
	URL string `json:"url" validate:"notblank"`
}

type CreateHomeRequest struct {
	Address           string              `json:"address" validate:"notblank"`
	NumberOfBedrooms  int                 `json:"numberOfBedrooms" validate:"gt=0"`
	NumberOfBathrooms float64             `json:"numberOfBathroooms" validate:"gt=0"`
	City              string              `json:"city" validate:"notblank"`
	Price             float64             `json:"price" validate:"gt=0"`
	LandSize          float64             `json:"landSize" validate:"gt=0"`
	PropertyType      models.PropertyType `json:"propertyType" validate:"oneof=RESIDENTIAL CONDO"`
	Images            []ImageRequest      `json:"images" validate:"min=1,dive"`
}

// UpdateHomeRequest is a patch; nil fields are left untouched.
type UpdateHomeRequest struct {
	Address           *string              `json:"address" validate:"omitnil,notblank"`
	NumberOfBedrooms  *int                 `json:"numberOfBedrooms" validate:"omitnil,gt=0"`
	NumberOfBathrooms *float64             `json:"numberOfBathroooms" validate:"omitnil,gt=0"`
	City              *string              `json:"city" validate:"omitnil,notblank"`
	Price             *float64             `json:"price" validate:"omitnil,gt=0"`
	LandSize          *float64             `json:"landSize" validate:"omitnil,gt=0"`
	PropertyType      *models.PropertyType `json:"propertyType" validate:"omitnil,oneof=RESIDENTIAL CONDO"`
}

type InquireRequest struct {
	Message string `json:"message"`
}

type ImageResponse struct {
	URL string `json:"url"`
}

type RealtorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type HomeResponse struct {
	ID                uint                `json:"id"`
	Address           string              `json:"address"`
	NumberOfBedrooms  int                 `json:"numberOfBedrooms"`
	NumberOfBathrooms float64             `json:"numberOfBathrooms"`
	City              string              `json:"city"`
	ListedDate        time.Time           `json:"listedDate"`
	Price             float64             `json:"price"`
	Image             string              `json:"image,omitempty"`
	LandSize          float64             `json:"landsize"`
	PropertyType      models.PropertyType `json:"propertyType"`
	Images            []ImageResponse     `json:"images,omitempty"`
	Realtor           *RealtorResponse    `json:"realtor,omitempty"`
}

type BuyerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type MessageResponse struct {
	ID        uint           `json:"id"`
	Message   string         `json:"message"`
	HomeID    uint           `json:"homeId"`
	CreatedAt time.Time      `json:"createdAt"`
	Buyer     *BuyerResponse `json:"buyer,omitempty"`
}

// -------------------------
// internal -> external
// -------------------------

// toHomeResponse is the list view: scalar fields plus one representative
// image.
func toHomeResponse(h models.Home) HomeResponse {
	resp := HomeResponse{
		ID:                h.ID,
		Address:           h.Address,
		NumberOfBedrooms:  h.NumberOfBedrooms,
		NumberOfBathrooms: h.NumberOfBathrooms,
		City:              h.City,
		ListedDate:        h.ListedDate,
		Price:             h.Price,
		LandSize:          h.LandSize,
		PropertyType:      h.PropertyType,
	}
	if len(h.Images) > 0 {
		resp.Image = h.Images[0].URL
	}
	return resp
}

// toHomeDetailResponse is the single-home view with every image and the
// realtor's contact details when loaded.
func toHomeDetailResponse(h models.Home) HomeResponse {
	resp := toHomeResponse(h)
	resp.Image = ""

	resp.Images = make([]ImageResponse, 0, len(h.Images))
	for _, img := range h.Images {
		resp.Images = append(resp.Images, ImageResponse{URL: img.URL})
	}

	if h.Realtor != nil {
		resp.Realtor = &RealtorResponse{
			Name:  h.Realtor.Name,
			Email: h.Realtor.Email,
			Phone: h.Realtor.Phone,
		}
	}
	return resp
}

func toMessageResponse(m models.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		Message:   m.Message,
		HomeID:    m.HomeID,
		CreatedAt: m.CreatedAt,
	}
	if m.Buyer != nil {
		resp.Buyer = &BuyerResponse{
			Name:  m.Buyer.Name,
			Email: m.Buyer.Email,
			Phone: m.Buyer.Phone,
		}
	}
	return resp
}

// -------------------------
// external -> internal
// -------------------------

func (r CreateHomeRequest) validate() error {
	return checkRequest(r)
}

// record splits the request into the home row owned by realtorID and its
// image rows. Image HomeIDs are unset until the home is created.
func (r CreateHomeRequest) record(realtorID uint) (models.Home, []models.Image) {
	home := models.Home{
		Address:           strings.TrimSpace(r.Address),
		NumberOfBedrooms:  r.NumberOfBedrooms,
		NumberOfBathrooms: r.NumberOfBathrooms,
		City:              strings.TrimSpace(r.City),
		Price:             r.Price,
		LandSize:          r.LandSize,
		PropertyType:      r.PropertyType,
		RealtorID:         realtorID,
	}

	images := make([]models.Image, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, models.Image{URL: strings.TrimSpace(img.URL)})
	}
	return home, images
}

func (r UpdateHomeRequest) validate() error {
	return checkRequest(r)
}

// columns returns the present fields keyed by column name.
func (r UpdateHomeRequest) columns() map[string]any {
	cols := make(map[string]any)
	set := func(field string, v any) { cols[homeColumns[field]] = v }

	if r.Address != nil {
		set("address", strings.TrimSpace(*r.Address))
	}
	if r.NumberOfBedrooms != nil {
		set("numberOfBedrooms", *r.NumberOfBedrooms)
	}
	if r.NumberOfBathrooms != nil {
		set("numberOfBathroooms", *r.NumberOfBathrooms)
	}
	if r.City != nil {
		set("city", strings.TrimSpace(*r.City))
	}
	if r.Price != nil {
		set("price", *r.Price)
	}
	if r.LandSize != nil {
		set("landSize", *r.LandSize)
	}
	if r.PropertyType != nil {
		set("propertyType", string(*r.PropertyType))
	}
	return cols
}
