package stock

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"validapro-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpsertParams struct {
	StoreID        uint
	ProductID      uint
	ExpirationDate time.Time
	Quantity       int
	ActorID        uint // user_id gravado em stock_history.changed_by
}

type UpsertResult struct {
	Entry   models.StockEntry
	History models.StockHistory
	Product models.Product
}

// Upsert aplica a regra "último escritor vence" para o par (loja, produto):
// se não existe entrada, cria; se existe, SUBSTITUI quantidade e validade
// (não soma). A linha de histórico é gravada na mesma transação — nunca fica
// estoque atualizado sem histórico, nem o contrário.
func Upsert(db *gorm.DB, p UpsertParams) (*UpsertResult, error) {
	if p.StoreID == 0 || p.ProductID == 0 || p.ExpirationDate.IsZero() {
		return nil, fmt.Errorf("%w: store_id, product_id e expiration_date são obrigatórios", ErrValidation)
	}
	if p.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity não pode ser negativa", ErrValidation)
	}

	var res UpsertResult
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res.Product, "id = ?", p.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrProductNotFound, p.ProductID)
			}
			return err
		}

		// imagem anterior para o histórico
		var prev models.StockEntry
		hasPrev := true
		if err := tx.Where("store_id = ? AND product_id = ?", p.StoreID, p.ProductID).
			First(&prev).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hasPrev = false
		}

		// um único INSERT ... ON CONFLICT sobre a restrição única
		// (store_id, product_id); dois upserts concorrentes nunca duplicam
		// a linha; quem confirma por último vence
		entry := models.StockEntry{
			StoreID:        p.StoreID,
			ProductID:      p.ProductID,
			ExpirationDate: p.ExpirationDate,
			Quantity:       p.Quantity,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"expiration_date", "quantity", "updated_at"}),
		}).Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %v", ErrConstraint, err)
			}
			return err
		}

		// relê a linha para obter o id e o estado final, independente do
		// driver devolver RETURNING ou não
		var cur models.StockEntry
		if err := tx.Where("store_id = ? AND product_id = ?", p.StoreID, p.ProductID).
			First(&cur).Error; err != nil {
			return err
		}

		hist := models.StockHistory{
			StockEntryID:  cur.ID,
			ChangedBy:     p.ActorID,
			NewQuantity:   cur.Quantity,
			NewExpiration: cur.ExpirationDate,
			ChangeType:    models.StockChangeInsert,
		}
		if hasPrev {
			oldQty := prev.Quantity
			oldExp := prev.ExpirationDate
			hist.OldQuantity = &oldQty
			hist.OldExpiration = &oldExp
			hist.ChangeType = models.StockChangeUpdate
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		res.Entry = cur
		res.History = hist
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ListFilters struct {
	StartDate   *time.Time // expiration_date >= StartDate
	EndDate     *time.Time // expiration_date <= EndDate
	MinQuantity *int       // quantity >= MinQuantity
	MaxQuantity *int       // quantity <= MaxQuantity
}

type StockRow struct {
	EntryID        uint
	ProductID      uint
	ProductName    string
	EAN            string
	ExpirationDate time.Time
	Quantity       int
	DaysRemaining  int
	LastUpdated    time.Time
}

// ListStock retorna as entradas de estoque da loja que satisfazem todos os
// filtros informados, com nome e EAN do produto e os dias restantes
// calculados contra a data de referência. Ordenação estável: validade
// ascendente e, em caso de empate, nome do produto.
func ListStock(db *gorm.DB, storeID uint, f ListFilters, today time.Time) ([]StockRow, error) {
	q := db.Where("store_id = ?", storeID)
	if f.StartDate != nil {
		q = q.Where("expiration_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("expiration_date <= ?", *f.EndDate)
	}
	if f.MinQuantity != nil {
		q = q.Where("quantity >= ?", *f.MinQuantity)
	}
	if f.MaxQuantity != nil {
		q = q.Where("quantity <= ?", *f.MaxQuantity)
	}

	var entries []models.StockEntry
	if err := q.Preload("Product").
		Order("expiration_date asc").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar estoque: %w", err)
	}

	rows := make([]StockRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, StockRow{
			EntryID:        e.ID,
			ProductID:      e.ProductID,
			ProductName:    e.Product.Name,
			EAN:            e.Product.EAN,
			ExpirationDate: e.ExpirationDate,
			Quantity:       e.Quantity,
			DaysRemaining:  DaysRemaining(e.ExpirationDate, today),
			LastUpdated:    e.UpdatedAt,
		})
	}

	// desempate por nome para a ordem ficar determinística
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].ExpirationDate.Equal(rows[j].ExpirationDate) {
			return rows[i].ExpirationDate.Before(rows[j].ExpirationDate)
		}
		return rows[i].ProductName < rows[j].ProductName
	})

	return rows, nil
}
