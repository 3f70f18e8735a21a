package models

import "time"

type Store struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Address   string `gorm:"size:255"`
	LeaderID  *uint  `gorm:"uniqueIndex"` // no máximo um líder por loja
	Leader    *User  `gorm:"foreignKey:LeaderID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
