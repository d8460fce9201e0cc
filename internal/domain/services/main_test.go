package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contacts-http-service/internal/domain/models"
	"contacts-http-service/internal/infrastructure/config"
)

// setupTestDB 创建内存数据库并迁移全部模型
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Person{},
		&models.Group{},
		&models.Location{},
		&models.PhoneNumber{},
		&models.EmailAddress{},
		&models.WebSite{},
		&models.StreetAddress{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
	}
}

func uintPtr(v uint) *uint {
	return &v
}
