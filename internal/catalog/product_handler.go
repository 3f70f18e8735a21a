package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"validapro-backend/internal/activity"
	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductResponse struct {
	ID        uint   `json:"product_id"`
	Name      string `json:"name"`
	EAN       string `json:"ean"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

type CreateProductRequest struct {
	Name     string `json:"name"`
	EAN      string `json:"ean"`
	Category string `json:"category"` // opcional
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		EAN:       p.EAN,
		Category:  p.Category,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/products (rota pública, como no catálogo original)
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := db.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os produtos")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}

// POST /api/products (admin e promoter)
func CreateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.EAN = strings.TrimSpace(body.EAN)

		if body.Name == "" || body.EAN == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Campos obrigatórios: name, ean")
		}
		if len(body.EAN) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "EAN deve ter pelo menos 8 caracteres")
		}

		product := models.Product{
			Name:     body.Name,
			EAN:      body.EAN,
			Category: strings.TrimSpace(body.Category),
		}
		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "EAN já cadastrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o produto")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		if err := activity.Write(db, activity.Entry{
			Type:        models.ActivityProductCreate,
			Description: fmt.Sprintf("Produto %s cadastrado", product.Name),
			UserID:      userID,
		}); err != nil {
			log.Println("Erro ao registrar atividade:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// GET /api/products/search?q= — busca por nome ou EAN
func SearchProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Parâmetro q é obrigatório")
		}

		pattern := "%" + q + "%"
		var products []models.Product
		if err := db.
			Where("ean LIKE ? OR name LIKE ?", pattern, pattern).
			Order("name asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível buscar produtos")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}
