package models

import "time"

type Product struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	EAN       string `gorm:"column:ean;size:14;uniqueIndex;not null"` // código de barras, mínimo 8 caracteres
	Category  string `gorm:"size:100"`
	CreatedAt time.Time
}
