package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleLeader    UserRole = "leader"
	RolePromoter  UserRole = "promoter"
	RoleRepositor UserRole = "repositor"
)

type User struct {
	ID           uint  `gorm:"primaryKey"`
	StoreID      *uint `gorm:"index"` // nulo para o admin global
	Store        *Store
	Username     string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
