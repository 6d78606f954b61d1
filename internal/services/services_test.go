package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/archfolio/backend/internal/config"
	"github.com/archfolio/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	// sqlite needs this or the cascade constraints are ignored
	db.Exec("PRAGMA foreign_keys = ON")
	if err := models.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		UploadPath:        t.TempDir(),
		UploadURLPrefix:   "/uploads/",
		UploadMaxFileSize: 10 * 1024 * 1024,
	}
}

func testImageService(t *testing.T, db *gorm.DB) (*ImageService, *config.Config) {
	cfg := testConfig(t)
	storage := NewStorageService(cfg)
	return NewImageService(db, cfg, storage), cfg
}

func uploadTestImage(t *testing.T, svc *ImageService, name string) *models.Image {
	res, err := svc.UploadImage(ImageUpload{
		FileName:    name,
		ContentType: "image/png",
		Data:        []byte("not really a png but close enough"),
	}, nil, "", true, false, 0)
	if err != nil {
		t.Fatalf("Failed to upload test image: %v", err)
	}
	return res.Image
}

func createTestTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	tag := &models.Tag{Name: name, CreatedAt: models.Now()}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	return tag
}

func createTestProject(t *testing.T, db *gorm.DB, name string) *models.Project {
	project := &models.Project{Name: name, CreatedAt: models.Now()}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
