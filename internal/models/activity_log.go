package models

import "time"

type ActivityType string

const (
	ActivityStoreCreate   ActivityType = "store_create"
	ActivityStoreUpdate   ActivityType = "store_update"
	ActivityStoreDelete   ActivityType = "store_delete"
	ActivityUserCreate    ActivityType = "user_create"
	ActivityProductCreate ActivityType = "product_create"
	ActivityStockUpdate   ActivityType = "stock_update"
)

// ActivityLog: trilha legível de eventos de negócio, mais grossa que o
// StockHistory. Nunca é atualizada nem excluída.
type ActivityLog struct {
	ID           uint         `gorm:"primaryKey"`
	ActivityType ActivityType `gorm:"size:30;not null"`
	Description  string       `gorm:"size:255;not null"`
	UserID       uint         `gorm:"index;not null"`
	User         User         `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
}
