package models

import "time"

// Message - buyer inquiry about a home, addressed to its realtor
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	Message   string `gorm:"type:text;not null"`
	HomeID    uint   `gorm:"column:home_id;index;not null"`
	RealtorID uint   `gorm:"column:realtor_id;index;not null"`
	BuyerID   uint   `gorm:"column:buyer_id;index;not null"`
	Buyer     *User  `gorm:"foreignKey:BuyerID"`
	CreatedAt time.Time
}
