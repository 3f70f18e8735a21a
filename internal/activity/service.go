package activity

import (
	"fmt"

	"validapro-backend/internal/models"

	"gorm.io/gorm"
)

type Entry struct {
	Type        models.ActivityType
	Description string
	UserID      uint
}

// Write registra um evento de negócio no log de atividades. A escrita é
// melhor esforço: os chamadores logam o erro e seguem, sem desfazer a
// operação principal.
func Write(db *gorm.DB, e Entry) error {
	row := models.ActivityLog{
		ActivityType: e.Type,
		Description:  e.Description,
		UserID:       e.UserID,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("não foi possível registrar atividade: %w", err)
	}
	return nil
}

// Recent retorna as últimas entradas do log, mais novas primeiro.
func Recent(db *gorm.DB, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := db.Preload("User").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("não foi possível listar atividades: %w", err)
	}
	return logs, nil
}
