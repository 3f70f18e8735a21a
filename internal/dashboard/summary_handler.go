package dashboard

import (
	"strconv"
	"time"

	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"
	"validapro-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Limites usados pelo painel: estoque baixo abaixo de 15 unidades e
// "vencendo em breve" com menos de 10 dias restantes.
const (
	LowStockThreshold = 15
	ExpiringSoonDays  = 10
)

type Summary struct {
	TotalEntries int `json:"total_entries"`
	LowStock     int `json:"low_stock"`
	ExpiringSoon int `json:"expiring_soon"`
}

// Summarize deriva os contadores do painel a partir das linhas já anotadas
// pelo ledger; não consulta o banco.
func Summarize(rows []stock.StockRow) Summary {
	s := Summary{TotalEntries: len(rows)}
	for _, r := range rows {
		if r.Quantity < LowStockThreshold {
			s.LowStock++
		}
		if r.DaysRemaining < ExpiringSoonDays {
			s.ExpiringSoon++
		}
	}
	return s
}

// GET /api/dashboard/summary
func SummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := resolveStoreID(c)
		if err != nil {
			return err
		}

		rows, err := stock.ListStock(db, storeID, stock.ListFilters{}, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível calcular o resumo")
		}

		return c.JSON(Summarize(rows))
	}
}

func resolveStoreID(c *fiber.Ctx) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Não foi possível identificar o papel do usuário")
	}

	if role == models.RoleAdmin {
		v, err := strconv.ParseUint(c.Query("store_id"), 10, 32)
		if err != nil || v == 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "store_id é obrigatório para administradores")
		}
		return uint(v), nil
	}

	sVal := c.Locals(auth.CtxStoreIDKey)
	sPtr, ok := sVal.(*uint)
	if !ok || sPtr == nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "Usuário não está vinculado a uma loja")
	}
	return *sPtr, nil
}
