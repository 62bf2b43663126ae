package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bulusma.link/configs"
	"bulusma.link/configs/configsdatabase"
	"bulusma.link/configs/configslog"
	"bulusma.link/database/seeders"
	"bulusma.link/models"
)

// setupTestDB her test için izole bir in-memory SQLite veritabanı kurar,
// şemayı migrate eder, durumları seed eder ve global bağlantıyı değiştirir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if configslog.Log == nil {
		configslog.InitLogger()
	}
	configs.SetConfig(&configs.Config{
		AppEnv:      "test",
		JWTSecret:   "test-gizli-anahtar",
		JWTIssuer:   "bulusma.link",
		JWTTTL:      3 * time.Hour,
		QRImageSize: 128,
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// In-memory SQLite bağlantı başına ayrı veritabanı verir; havuz tek
	// bağlantıya sabitlenmeli.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MeetStatus{},
		&models.Meet{},
		&models.Member{},
	))
	require.NoError(t, seeders.SeedMeetStatuses(db))

	configsdatabase.SetDB(db)
	t.Cleanup(func() {
		configsdatabase.SetDB(nil)
		_ = sqlDB.Close()
	})
	return db
}

// createTestUser testler için doğrudan veritabanına kullanıcı ekler.
func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		PublicName:   "Test Kullanıcı",
		Role:         "User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
