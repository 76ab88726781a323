package models

import "time"

type UserType string

const (
	UserRealtor UserType = "REALTOR"
	UserBuyer   UserType = "BUYER"
	UserAdmin   UserType = "ADMIN"
)

type User struct {
	ID        uint     `gorm:"primaryKey"`
	Name      string   `gorm:"size:100;not null"`
	Email     string   `gorm:"size:100;uniqueIndex;not null"`
	Phone     string   `gorm:"size:50"`
	UserType  UserType `gorm:"column:user_type;size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
