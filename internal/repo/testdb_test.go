package repo

import (
	"fmt"
	"strings"
	"testing"
	"time"

	cache "github.com/patrickmn/go-cache"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"userdevice/internal/models"
)

// testDB открывает sqlite в памяти с включёнными FK; имя базы — от теста,
// чтобы параллельные тесты не делили состояние.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// одно соединение, иначе in-memory база исчезает между коннектами
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.DeviceType{},
		&models.User{},
		&models.Device{},
		&models.Binding{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testCache() *cache.Cache { return cache.New(time.Minute, 2*time.Minute) }

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }
func intPtr(n int) *int       { return &n }
