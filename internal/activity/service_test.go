package activity

import (
	"fmt"
	"strings"
	"testing"

	"validapro-backend/internal/database"
	"validapro-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{Username: "maria", PasswordHash: "x", Role: models.RolePromoter}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestWriteAndRecent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	for i := 1; i <= 12; i++ {
		err := Write(db, Entry{
			Type:        models.ActivityProductCreate,
			Description: fmt.Sprintf("Produto %d cadastrado", i),
			UserID:      user.ID,
		})
		require.NoError(t, err)
	}

	logs, err := Recent(db, 10)
	require.NoError(t, err)
	require.Len(t, logs, 10)

	// mais novas primeiro; as duas mais antigas ficam de fora
	assert.Equal(t, "Produto 12 cadastrado", logs[0].Description)
	assert.Equal(t, "Produto 3 cadastrado", logs[9].Description)

	// o autor vem junto para o painel exibir o nome
	assert.Equal(t, "maria", logs[0].User.Username)
}

func TestWriteUnknownUser(t *testing.T) {
	db := newTestDB(t)

	// usuário inexistente viola a chave estrangeira; quem chama decide
	// apenas logar e seguir
	err := Write(db, Entry{
		Type:        models.ActivityStockUpdate,
		Description: "escrita órfã",
		UserID:      9999,
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&count).Error)
	assert.Zero(t, count)
}
