package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/archfolio/backend/internal/config"
	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	db.Exec("PRAGMA foreign_keys = ON")
	if err := models.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		UploadPath:        t.TempDir(),
		UploadURLPrefix:   "/uploads/",
		UploadMaxFileSize: 10 * 1024 * 1024,
	}
	storage := services.NewStorageService(cfg)
	imageService := services.NewImageService(db, cfg, storage)
	imageTagService := services.NewImageTagService(db)
	tagService := services.NewTagService(db, imageTagService)

	imageHandler := NewImageHandler(imageService)
	imageTagHandler := NewImageTagHandler(imageTagService)
	tagHandler := NewTagHandler(tagService)

	r := gin.New()
	images := r.Group("/images")
	{
		images.GET("", imageHandler.GetAllImages)
		images.POST("/upload", imageHandler.UploadImage)
		images.POST("/upload/multiple", imageHandler.UploadImages)
		images.PUT("/:id", imageHandler.UpdateImage)
		images.DELETE("/:id", imageHandler.DeleteImage)
		images.DELETE("/:id/explicit", imageHandler.DeleteImageExplicit)
	}
	api := r.Group("/api")
	{
		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.GetAllTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}
		imageTags := api.Group("/image-tags")
		{
			imageTags.GET("", imageTagHandler.GetAll)
			imageTags.POST("/link", imageTagHandler.Link)
			imageTags.DELETE("/unlink", imageTagHandler.Unlink)
			imageTags.GET("/image/:imageId/tags", imageTagHandler.GetTagsByImage)
			imageTags.GET("/tag/:tagId/images", imageTagHandler.GetImagesByTag)
		}
	}
	return r
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func uploadFile(router *gin.Engine, path, field, name, contentType string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, _ := w.CreatePart(h)
	part.Write(data)
	w.Close()

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateTagEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	resp := doJSON(router, "POST", "/api/tags", gin.H{"tag_name": "landscape", "color": "#00ff00"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var tag models.Tag
	json.Unmarshal(resp.Body.Bytes(), &tag)
	if tag.Name != "landscape" {
		t.Errorf("Expected created tag echoed back, got %+v", tag)
	}

	// Duplicate name is rejected with 400
	resp = doJSON(router, "POST", "/api/tags", gin.H{"tag_name": "landscape"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for duplicate, got %d", resp.Code)
	}

	// Blank name is rejected with 400
	resp = doJSON(router, "POST", "/api/tags", gin.H{"tag_name": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for blank name, got %d", resp.Code)
	}
}

func TestGetTagMissingEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	resp := doJSON(router, "GET", "/api/tags/12345", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}

	resp = doJSON(router, "GET", "/api/tags/not-a-number", nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for malformed id, got %d", resp.Code)
	}
}

func TestUploadImageEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	resp := uploadFile(router, "/images/upload", "file", "entry.png", "image/png", []byte("png bytes"))
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["original_file_name"] != "entry.png" {
		t.Errorf("Expected original file name echoed, got %v", body["original_file_name"])
	}
	if body["image_url"] == "" || body["image_url"] == nil {
		t.Error("Expected image_url in upload response")
	}

	// An unsupported type is rejected with 400
	resp = uploadFile(router, "/images/upload", "file", "raw.tiff", "image/tiff", []byte("tiff"))
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for tiff, got %d: %s", resp.Code, resp.Body.String())
	}

	// A request without a file is rejected with 400
	resp = doJSON(router, "POST", "/images/upload", nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without file, got %d", resp.Code)
	}
}

func TestLinkUnlinkEndpoints(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	image := &models.Image{FileName: "x.png", ImageURL: "/uploads/x.png", CreatedAt: models.Now()}
	if err := db.Create(image).Error; err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	tag := &models.Tag{Name: "exterior", CreatedAt: models.Now()}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}

	resp := doJSON(router, "POST", "/api/image-tags/link?imageId=1&tagId=1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Linking the same pair twice is a 400
	resp = doJSON(router, "POST", "/api/image-tags/link?imageId=1&tagId=1", nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for duplicate link, got %d", resp.Code)
	}

	// Linking a missing tag is a 404
	resp = doJSON(router, "POST", "/api/image-tags/link?imageId=1&tagId=999", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing tag, got %d", resp.Code)
	}

	resp = doJSON(router, "GET", "/api/image-tags/image/1/tags", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	var tags []models.Tag
	json.Unmarshal(resp.Body.Bytes(), &tags)
	if len(tags) != 1 || tags[0].Name != "exterior" {
		t.Errorf("Expected the linked tag, got %v", tags)
	}

	resp = doJSON(router, "DELETE", "/api/image-tags/unlink?imageId=1&tagId=1", nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
	// Unlinking again still succeeds
	resp = doJSON(router, "DELETE", "/api/image-tags/unlink?imageId=1&tagId=1", nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 on repeat unlink, got %d", resp.Code)
	}
}

func TestDeleteImageEndpointCleansLinks(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	image := &models.Image{FileName: "y.png", ImageURL: "/uploads/y.png", CreatedAt: models.Now()}
	db.Create(image)
	tag := &models.Tag{Name: "interior", CreatedAt: models.Now()}
	db.Create(tag)
	db.Create(models.NewImageTag(image.ID, tag.ID))

	resp := doJSON(router, "DELETE", "/images/1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var linkCount int64
	db.Model(&models.ImageTag{}).Count(&linkCount)
	if linkCount != 0 {
		t.Errorf("Expected link rows gone, got %d", linkCount)
	}

	resp = doJSON(router, "DELETE", "/images/1", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on repeat delete, got %d", resp.Code)
	}
}
