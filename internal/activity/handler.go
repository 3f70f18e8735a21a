package activity

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityResponse struct {
	Description string `json:"description"`
	Username    string `json:"username"`
	CreatedAt   string `json:"created_at"`
}

// GET /api/activity — as 10 atividades mais recentes
func ListActivityHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := Recent(db, 10)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as atividades")
		}

		resp := make([]ActivityResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, ActivityResponse{
				Description: l.Description,
				Username:    l.User.Username,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
