package catalog

import (
	"fmt"
	"log"
	"strings"

	"validapro-backend/internal/activity"
	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/products/import
// Recebe um .xlsx via multipart (campo "file") com as colunas name e ean.
func ImportProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Arquivo inválido ou não enviado")
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Apenas arquivos .xlsx são aceitos")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível abrir o arquivo")
		}
		defer file.Close()

		result, err := ImportProducts(db, file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		if result.Imported > 0 {
			if err := activity.Write(db, activity.Entry{
				Type:        models.ActivityProductCreate,
				Description: fmt.Sprintf("Importados %d produtos via planilha", result.Imported),
				UserID:      userID,
			}); err != nil {
				log.Println("Erro ao registrar atividade:", err)
			}
		}

		return c.JSON(fiber.Map{
			"message":  "Produtos importados com sucesso",
			"imported": result.Imported,
			"skipped":  result.Skipped,
			"errors":   result.Errors,
		})
	}
}
