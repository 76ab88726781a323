package models

import "time"

type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

// Valid reports whether t is one of the known property types.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyResidential, PropertyCondo:
		return true
	}
	return false
}

// Home - a property listing owned by one realtor
type Home struct {
	ID                uint         `gorm:"primaryKey"`
	Address           string       `gorm:"size:255;not null"`
	NumberOfBedrooms  int          `gorm:"column:number_of_bedrooms;not null"`
	NumberOfBathrooms float64      `gorm:"column:number_of_bathroooms;not null"`
	City              string       `gorm:"size:100;index;not null"`
	ListedDate        time.Time    `gorm:"column:listed_ddate;autoCreateTime"`
	Price             float64      `gorm:"index;not null"`
	LandSize          float64      `gorm:"column:land_size;not null"`
	PropertyType      PropertyType `gorm:"column:property_type;size:20;index;not null"`
	CreatedAt         time.Time    `gorm:"column:created_at"`
	UpdatedAt         time.Time    `gorm:"column:update_at"`

	RealtorID uint  `gorm:"column:realtor_id;index;not null"`
	Realtor   *User `gorm:"foreignKey:RealtorID"`

	Images   []Image
	Messages []Message
}

type Image struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"column:url;size:1000;not null"`
	HomeID    uint   `gorm:"column:home_id;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"column:update_at"`
}
