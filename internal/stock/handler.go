package stock

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"validapro-backend/internal/activity"
	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpsertStockRequest struct {
	StoreID        *uint  `json:"store_id"` // só considerado para admin
	ProductID      uint   `json:"product_id"`
	ExpirationDate string `json:"expiration_date"` // "2025-01-31"
	Quantity       *int   `json:"quantity"`
}

type StockEntryResponse struct {
	ID             uint   `json:"id"`
	StoreID        uint   `json:"store_id"`
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	EAN            string `json:"ean"`
	ExpirationDate string `json:"expiration_date"`
	Quantity       int    `json:"quantity"`
	DaysRemaining  int    `json:"days_remaining"`
	LastUpdated    string `json:"last_updated"`
}

// resolveStoreID: usuários de loja operam sempre sobre a própria loja (vinda
// do token); o admin precisa indicar a loja explicitamente.
func resolveStoreID(c *fiber.Ctx, explicit *uint) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Não foi possível identificar o papel do usuário")
	}

	if role == models.RoleAdmin {
		if explicit == nil || *explicit == 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "store_id é obrigatório para administradores")
		}
		return *explicit, nil
	}

	sVal := c.Locals(auth.CtxStoreIDKey)
	sPtr, ok := sVal.(*uint)
	if !ok || sPtr == nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "Usuário não está vinculado a uma loja")
	}
	return *sPtr, nil
}

func storeIDFromQuery(c *fiber.Ctx) *uint {
	s := c.Query("store_id")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}

// POST /api/stock
func UpsertStockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.ProductID == 0 || body.ExpirationDate == "" || body.Quantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Campos obrigatórios: product_id, expiration_date, quantity")
		}

		storeID, err := resolveStoreID(c, body.StoreID)
		if err != nil {
			return err
		}

		expiration, err := time.Parse("2006-01-02", body.ExpirationDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Formato da data deve ser 'YYYY-MM-DD'")
		}

		actorID, _ := c.Locals(auth.CtxUserIDKey).(uint)

		res, err := Upsert(db, UpsertParams{
			StoreID:        storeID,
			ProductID:      body.ProductID,
			ExpirationDate: expiration,
			Quantity:       *body.Quantity,
			ActorID:        actorID,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrValidation):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrProductNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, ErrConstraint):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			log.Println("Erro inesperado no upsert de estoque:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o estoque")
		}

		// registro de atividade é melhor esforço: falha não desfaz o estoque
		if err := activity.Write(db, activity.Entry{
			Type: models.ActivityStockUpdate,
			Description: fmt.Sprintf("Adicionado/atualizado %d unidades de %s na loja %d",
				res.Entry.Quantity, res.Product.Name, storeID),
			UserID: actorID,
		}); err != nil {
			log.Println("Erro ao registrar atividade:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(StockEntryResponse{
			ID:             res.Entry.ID,
			StoreID:        res.Entry.StoreID,
			ProductID:      res.Entry.ProductID,
			ProductName:    res.Product.Name,
			EAN:            res.Product.EAN,
			ExpirationDate: res.Entry.ExpirationDate.Format("2006-01-02"),
			Quantity:       res.Entry.Quantity,
			DaysRemaining:  DaysRemaining(res.Entry.ExpirationDate, time.Now()),
			LastUpdated:    res.Entry.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/stock?start_date=&end_date=&min_quantity=&max_quantity=
func ListStockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := resolveStoreID(c, storeIDFromQuery(c))
		if err != nil {
			return err
		}

		var filters ListFilters
		if s := c.Query("start_date"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date deve ser 'YYYY-MM-DD'")
			}
			filters.StartDate = &d
		}
		if s := c.Query("end_date"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date deve ser 'YYYY-MM-DD'")
			}
			filters.EndDate = &d
		}
		if s := c.Query("min_quantity"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "min_quantity deve ser um número inteiro")
			}
			filters.MinQuantity = &v
		}
		if s := c.Query("max_quantity"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "max_quantity deve ser um número inteiro")
			}
			filters.MaxQuantity = &v
		}

		rows, err := ListStock(db, storeID, filters, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar o estoque")
		}

		resp := make([]StockEntryResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, StockEntryResponse{
				ID:             r.EntryID,
				StoreID:        storeID,
				ProductID:      r.ProductID,
				ProductName:    r.ProductName,
				EAN:            r.EAN,
				ExpirationDate: r.ExpirationDate.Format("2006-01-02"),
				Quantity:       r.Quantity,
				DaysRemaining:  r.DaysRemaining,
				LastUpdated:    r.LastUpdated.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
