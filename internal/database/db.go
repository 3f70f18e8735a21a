package database

import (
	"errors"
	"fmt"
	"log"

	"validapro-backend/internal/config"
	"validapro-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open conecta no Postgres, roda as migrações e garante o admin padrão.
// O handle é retornado (e não guardado em variável global) para que os
// handlers recebam a conexão explicitamente.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("não foi possível conectar ao banco: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := SeedAdmin(db); err != nil {
		return nil, err
	}

	log.Println("Conexão com o banco estabelecida. Migração concluída.")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.StockEntry{},
		&models.StockHistory{},
		&models.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("erro no AutoMigrate: %w", err)
	}
	return nil
}

// SeedAdmin cria o usuário admin/admin123 na primeira subida, se ainda não
// existir nenhum administrador.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("erro ao verificar admin padrão: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash do admin padrão: %w", err)
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil // outro processo criou primeiro
		}
		return fmt.Errorf("erro ao criar admin padrão: %w", err)
	}

	log.Println("Usuário admin padrão criado")
	return nil
}
