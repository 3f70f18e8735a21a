package models

import "time"

type StockChangeType string

const (
	StockChangeInsert StockChangeType = "insert"
	StockChangeUpdate StockChangeType = "update"
	StockChangeDelete StockChangeType = "delete"
)

// StockHistory: trilha de auditoria do estoque, somente inserção.
// Uma linha por mutação de StockEntry, com a imagem antes/depois e o
// usuário real que fez a alteração.
type StockHistory struct {
	ID            uint       `gorm:"primaryKey"`
	StockEntryID  uint       `gorm:"index;not null"`
	StockEntry    StockEntry `gorm:"constraint:OnDelete:CASCADE"`
	ChangedBy     uint       `gorm:"not null"` // user_id de quem alterou
	OldQuantity   *int
	NewQuantity   int
	OldExpiration *time.Time
	NewExpiration time.Time
	ChangeType    StockChangeType `gorm:"size:10;not null"`
	CreatedAt     time.Time
}
