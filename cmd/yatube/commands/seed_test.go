package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/config"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, string) {
	cfg := config.Default()
	cfg.DBDSN = filepath.Join(t.TempDir(), "yatube.db")
	db, err := openDB(cfg)
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return db, cfg.DBDSN
}

func TestSeedIsRepeatable(t *testing.T) {
	db, _ := setupTestDB(t)

	created, err := seed(db, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	_, err = seed(db, 3)
	require.NoError(t, err)

	var users, groups, posts, grouped int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Group{}).Count(&groups)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Post{}).Where("group_id IS NOT NULL").Count(&grouped)
	assert.Equal(t, int64(2), users)
	assert.Equal(t, int64(1), groups)
	assert.Equal(t, int64(8), posts)
	assert.Equal(t, int64(5), grouped)

	var leo models.User
	require.NoError(t, db.Where("username = ?", "leo").First(&leo).Error)
	assert.True(t, auth.CheckPassword(seedPassword, leo.PasswordHash))
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("YATUBE_DB_DRIVER", "mysql")
	dbDSN = "custom.db"
	dbDriver = "sqlite"
	t.Cleanup(func() { dbDSN, dbDriver = "", "" })

	cfg := loadConfig(rootCmd)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "custom.db", cfg.DBDSN)
}
