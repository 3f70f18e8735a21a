package auth

import (
	"strings"

	"validapro-backend/internal/config"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Username = strings.TrimSpace(body.Username)

		var user models.User
		if err := db.Where("username = ?", body.Username).First(&user).Error; err != nil {
			// mesma mensagem para usuário inexistente e senha errada
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciais inválidas")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciais inválidas")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"role":  user.Role,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"role":     user.Role,
				"store_id": user.StoreID,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Não foi possível identificar o usuário")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}

		response := fiber.Map{
			"user_id":  user.ID,
			"username": user.Username,
			"role":     user.Role,
			"store_id": user.StoreID,
		}

		// inclui a loja quando o usuário está vinculado a uma
		if user.StoreID != nil {
			var store models.Store
			if err := db.First(&store, *user.StoreID).Error; err == nil {
				response["store"] = fiber.Map{
					"id":      store.ID,
					"name":    store.Name,
					"address": store.Address,
				}
			}
		}

		return c.JSON(response)
	}
}
