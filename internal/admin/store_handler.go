package admin

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"validapro-backend/internal/activity"
	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateStoreRequest struct {
	StoreName      string `json:"store_name"`
	Address        string `json:"address"`
	LeaderUsername string `json:"leader_username"`
	LeaderPassword string `json:"leader_password"`
}

type UpdateStoreRequest struct {
	StoreName      *string `json:"store_name"`
	Address        *string `json:"address"`
	LeaderUsername *string `json:"leader_username"`
	LeaderPassword *string `json:"leader_password"`
}

type StoreResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Leader    *string `json:"leader"` // username do líder, nulo se a loja não tem líder
	CreatedAt string  `json:"created_at"`
}

func actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals(auth.CtxUserIDKey).(uint)
	return id
}

// POST /api/admin/stores
// Cria a loja e o líder juntos, numa única transação: usuário líder, loja
// apontando para ele e o vínculo de volta (store_id do líder).
func CreateStoreHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.StoreName = strings.TrimSpace(body.StoreName)
		body.LeaderUsername = strings.TrimSpace(body.LeaderUsername)

		if body.StoreName == "" || body.LeaderUsername == "" || body.LeaderPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Campos obrigatórios: store_name, leader_username, leader_password")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.LeaderPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		var store models.Store
		err = db.Transaction(func(tx *gorm.DB) error {
			leader := models.User{
				Username:     body.LeaderUsername,
				PasswordHash: string(hash),
				Role:         models.RoleLeader,
			}
			if err := tx.Create(&leader).Error; err != nil {
				return err
			}

			store = models.Store{
				Name:     body.StoreName,
				Address:  body.Address,
				LeaderID: &leader.ID,
			}
			if err := tx.Create(&store).Error; err != nil {
				return err
			}

			return tx.Model(&leader).Update("store_id", store.ID).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Nome de usuário do líder já existe")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a loja")
		}

		if err := activity.Write(db, activity.Entry{
			Type:        models.ActivityStoreCreate,
			Description: fmt.Sprintf("Criada nova loja: %s", store.Name),
			UserID:      actorID(c),
		}); err != nil {
			log.Println("Erro ao registrar atividade:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(StoreResponse{
			ID:        store.ID,
			Name:      store.Name,
			Address:   store.Address,
			Leader:    &body.LeaderUsername,
			CreatedAt: store.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/admin/stores — lojas sem líder continuam aparecendo
func ListStoresHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := db.Preload("Leader").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as lojas")
		}

		resp := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			var leader *string
			if s.Leader != nil {
				leader = &s.Leader.Username
			}
			resp = append(resp, StoreResponse{
				ID:        s.ID,
				Name:      s.Name,
				Address:   s.Address,
				Leader:    leader,
				CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/admin/stores/:id
func UpdateStoreHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID da loja inválido")
		}

		var store models.Store
		if err := db.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Loja não encontrada")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.StoreName != nil {
			name := strings.TrimSpace(*body.StoreName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nome da loja não pode ser vazio")
			}
			store.Name = name
		}
		if body.Address != nil {
			store.Address = *body.Address
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&store).Error; err != nil {
				return err
			}

			// credenciais do líder só mudam quando enviadas
			if store.LeaderID != nil && (body.LeaderUsername != nil || body.LeaderPassword != nil) {
				updates := map[string]interface{}{}
				if body.LeaderUsername != nil {
					updates["username"] = strings.TrimSpace(*body.LeaderUsername)
				}
				if body.LeaderPassword != nil {
					hash, err := bcrypt.GenerateFromPassword([]byte(*body.LeaderPassword), bcrypt.DefaultCost)
					if err != nil {
						return err
					}
					updates["password_hash"] = string(hash)
				}
				if err := tx.Model(&models.User{}).
					Where("id = ?", *store.LeaderID).
					Updates(updates).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a loja")
		}

		if err := activity.Write(db, activity.Entry{
			Type:        models.ActivityStoreUpdate,
			Description: fmt.Sprintf("Atualizada loja: %s", store.Name),
			UserID:      actorID(c),
		}); err != nil {
			log.Println("Erro ao registrar atividade:", err)
		}

		return c.JSON(StoreResponse{
			ID:        store.ID,
			Name:      store.Name,
			Address:   store.Address,
			CreatedAt: store.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// DELETE /api/admin/stores/:id
// Remove a loja e os usuários dela; o estoque cai junto via cascade.
func DeleteStoreHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID da loja inválido")
		}

		var store models.Store
		if err := db.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Loja não encontrada")
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			// solta a referência ao líder antes de excluir os usuários
			if err := tx.Model(&store).Update("leader_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.StockEntry{}, "store_id = ?", store.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.User{}, "store_id = ?", store.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&store).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível excluir a loja")
		}

		if err := activity.Write(db, activity.Entry{
			Type:        models.ActivityStoreDelete,
			Description: fmt.Sprintf("Excluída loja: %s", store.Name),
			UserID:      actorID(c),
		}); err != nil {
			log.Println("Erro ao registrar atividade:", err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
