package admin

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"validapro-backend/internal/activity"
	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateStoreUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"` // promoter ou repositor
}

// POST /api/leader/users
// O líder cria promotores e repositores para a própria loja (a loja vem do
// token, nunca do corpo da requisição).
func CreateStoreUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Campos obrigatórios: username, password")
		}

		if body.Role != models.RolePromoter && body.Role != models.RoleRepositor {
			return fiber.NewError(fiber.StatusBadRequest, "Papel deve ser 'promoter' ou 'repositor'")
		}

		storeVal := c.Locals(auth.CtxStoreIDKey)
		storePtr, ok := storeVal.(*uint)
		if !ok || storePtr == nil {
			return fiber.NewError(fiber.StatusForbidden, "Líder não está vinculado a uma loja")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
			Role:         body.Role,
			StoreID:      storePtr,
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Nome de usuário já existe")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		if err := activity.Write(db, activity.Entry{
			Type:        models.ActivityUserCreate,
			Description: fmt.Sprintf("Criado usuário %s (%s) na loja %d", user.Username, user.Role, *storePtr),
			UserID:      actorID(c),
		}); err != nil {
			log.Println("Erro ao registrar atividade:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"store_id": user.StoreID,
		})
	}
}
