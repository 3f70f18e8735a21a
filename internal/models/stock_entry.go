package models

import "time"

// StockEntry: situação atual de um produto em uma loja (quantidade e validade).
// A unicidade (store_id, product_id) é a chave do upsert: reenviar estoque
// para o mesmo par substitui a linha em vez de duplicá-la.
type StockEntry struct {
	ID             uint      `gorm:"primaryKey"`
	StoreID        uint      `gorm:"not null;uniqueIndex:idx_stock_store_product"`
	Store          Store     `gorm:"constraint:OnDelete:CASCADE"`
	ProductID      uint      `gorm:"not null;uniqueIndex:idx_stock_store_product"`
	Product        Product   `gorm:"constraint:OnDelete:CASCADE"`
	ExpirationDate time.Time `gorm:"index;not null"`
	Quantity       int       `gorm:"not null;check:quantity >= 0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
