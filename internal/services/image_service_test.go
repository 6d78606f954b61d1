package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

func TestUploadImageStoresFileAndRecord(t *testing.T) {
	db := setupTestDB(t)
	svc, cfg := testImageService(t, db)

	res, err := svc.UploadImage(ImageUpload{
		FileName:    "facade.png",
		ContentType: "image/png",
		Data:        []byte("png bytes"),
	}, nil, "south facade", true, false, 3)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if res.Image.FileName == "facade.png" {
		t.Error("Stored file name should not be the original name")
	}
	if !strings.HasSuffix(res.Image.FileName, ".png") {
		t.Errorf("Stored name should keep the extension, got %s", res.Image.FileName)
	}
	if res.Image.ImageURL != cfg.UploadURLPrefix+res.Image.FileName {
		t.Errorf("Unexpected image URL %s", res.Image.ImageURL)
	}
	if res.OriginalFileName != "facade.png" {
		t.Errorf("Expected original name echoed back, got %s", res.OriginalFileName)
	}
	if res.Image.DisplayIndex != 3 {
		t.Errorf("Expected index 3, got %d", res.Image.DisplayIndex)
	}

	if _, err := os.Stat(filepath.Join(cfg.UploadPath, res.Image.FileName)); err != nil {
		t.Errorf("Uploaded file missing on disk: %v", err)
	}
}

func TestUploadImageUniqueStoredNames(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)

	first := uploadTestImage(t, svc, "same.jpg")
	second := uploadTestImage(t, svc, "same.jpg")

	if first.FileName == second.FileName {
		t.Errorf("Two uploads of the same original name collided: %s", first.FileName)
	}
}

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	db := setupTestDB(t)
	svc, cfg := testImageService(t, db)

	_, err := svc.UploadImage(ImageUpload{
		FileName:    "plan.bmp",
		ContentType: "image/bmp",
		Data:        []byte("bmp bytes"),
	}, nil, "", true, false, 0)
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	if n := countRows(t, db, &models.Image{}); n != 0 {
		t.Errorf("Expected no image records, got %d", n)
	}
	entries, _ := os.ReadDir(cfg.UploadPath)
	if len(entries) != 0 {
		t.Errorf("Expected no files on disk, got %d", len(entries))
	}
}

func TestUploadImageRejectsOversized(t *testing.T) {
	db := setupTestDB(t)
	svc, cfg := testImageService(t, db)
	cfg.UploadMaxFileSize = 8

	_, err := svc.UploadImage(ImageUpload{
		FileName:    "big.png",
		ContentType: "image/png",
		Data:        []byte("way past the eight byte limit"),
	}, nil, "", true, false, 0)
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestUploadImageRejectsEmptyFile(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)

	_, err := svc.UploadImage(ImageUpload{
		FileName:    "empty.png",
		ContentType: "image/png",
		Data:        nil,
	}, nil, "", true, false, 0)
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestUploadImageMissingProjectLeavesUnattached(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)

	missing := uint(9999)
	res, err := svc.UploadImage(ImageUpload{
		FileName:    "lonely.png",
		ContentType: "image/png",
		Data:        []byte("png bytes"),
	}, &missing, "", true, false, 0)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if res.Image.ProjectID != nil {
		t.Errorf("Expected no project attached, got %d", *res.Image.ProjectID)
	}
}

func TestUploadImagesAssignsPositionalIndexes(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)
	project := createTestProject(t, db, "Harbor House")

	uploads := []ImageUpload{
		{FileName: "a.png", ContentType: "image/png", Data: []byte("a")},
		{FileName: "b.png", ContentType: "image/png", Data: []byte("b")},
		{FileName: "c.png", ContentType: "image/png", Data: []byte("c")},
	}
	results, err := svc.UploadImages(uploads, &project.ID, "", true, false)
	if err != nil {
		t.Fatalf("Batch upload failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Image.DisplayIndex != i {
			t.Errorf("Expected index %d, got %d", i, res.Image.DisplayIndex)
		}
		if res.Image.ProjectID == nil || *res.Image.ProjectID != project.ID {
			t.Errorf("Image %d not attached to project", i)
		}
	}
}

func TestUploadImagesRollsBackOnBadFile(t *testing.T) {
	db := setupTestDB(t)
	svc, cfg := testImageService(t, db)

	uploads := []ImageUpload{
		{FileName: "ok.png", ContentType: "image/png", Data: []byte("fine")},
		{FileName: "bad.tiff", ContentType: "image/tiff", Data: []byte("nope")},
	}
	_, err := svc.UploadImages(uploads, nil, "", true, false)
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	if n := countRows(t, db, &models.Image{}); n != 0 {
		t.Errorf("Expected rollback to leave no records, got %d", n)
	}
	entries, _ := os.ReadDir(cfg.UploadPath)
	if len(entries) != 0 {
		t.Errorf("Expected cleanup to leave no files, got %d", len(entries))
	}
}

func TestUploadImagesEmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)

	_, err := svc.UploadImages(nil, nil, "", true, false)
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestGetAllImagesIncludesTags(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)
	linkSvc := NewImageTagService(db)

	image := uploadTestImage(t, svc, "tagged.png")
	other := uploadTestImage(t, svc, "untagged.png")
	tag := createTestTag(t, db, "brutalism")
	if _, err := linkSvc.Link(image.ID, tag.ID); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	images, err := svc.GetAllImages()
	if err != nil {
		t.Fatalf("GetAllImages failed: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(images))
	}

	byID := make(map[uint]ImageWithTags)
	for _, img := range images {
		byID[img.ID] = img
	}
	if got := byID[image.ID].Tags; len(got) != 1 || got[0].TagName != "brutalism" {
		t.Errorf("Expected one tag 'brutalism', got %v", got)
	}
	if got := byID[other.ID].Tags; got == nil || len(got) != 0 {
		t.Errorf("Untagged image should carry an empty tag list, got %v", got)
	}
}

func TestDeleteImageRemovesLinksAndFile(t *testing.T) {
	db := setupTestDB(t)
	svc, cfg := testImageService(t, db)
	linkSvc := NewImageTagService(db)

	image := uploadTestImage(t, svc, "doomed.png")
	tag := createTestTag(t, db, "demolished")
	if _, err := linkSvc.Link(image.ID, tag.ID); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	if err := svc.DeleteImage(image.ID); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}

	if n := countRows(t, db, &models.Image{}); n != 0 {
		t.Errorf("Expected image record gone, got %d rows", n)
	}
	if n := countRows(t, db, &models.ImageTag{}); n != 0 {
		t.Errorf("Expected link rows gone, got %d", n)
	}
	if n := countRows(t, db, &models.Tag{}); n != 1 {
		t.Errorf("Tag itself should survive, got %d rows", n)
	}
	if _, err := os.Stat(filepath.Join(cfg.UploadPath, image.FileName)); !os.IsNotExist(err) {
		t.Errorf("Expected backing file removed, stat err: %v", err)
	}
}

func TestDeleteImageExplicit(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)
	linkSvc := NewImageTagService(db)

	image := uploadTestImage(t, svc, "explicit.png")
	tag := createTestTag(t, db, "temp")
	if _, err := linkSvc.Link(image.ID, tag.ID); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	if err := svc.DeleteImageExplicit(image.ID); err != nil {
		t.Fatalf("DeleteImageExplicit failed: %v", err)
	}
	if n := countRows(t, db, &models.ImageTag{}); n != 0 {
		t.Errorf("Expected link rows gone, got %d", n)
	}
}

func TestDeleteImageNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)

	err := svc.DeleteImage(42)
	if !errs.IsNotFound(err) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestUpdateImagePartialFields(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)

	image := uploadTestImage(t, svc, "mutate.png")
	desc := "after dark"
	hide := false
	idx := 7
	updated, err := svc.UpdateImage(image.ID, ImageUpdate{
		Description: &desc,
		IsShow:      &hide,
		Index:       &idx,
	})
	if err != nil {
		t.Fatalf("UpdateImage failed: %v", err)
	}
	if updated.Description != "after dark" || updated.IsShow || updated.DisplayIndex != 7 {
		t.Errorf("Update not applied: %+v", updated)
	}
	if updated.FileName != image.FileName {
		t.Errorf("Untouched field changed: %s != %s", updated.FileName, image.FileName)
	}
}

func TestUpdateImageReassignToMissingProjectDetaches(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := testImageService(t, db)
	project := createTestProject(t, db, "Old Home")

	res, err := svc.UploadImage(ImageUpload{
		FileName:    "roam.png",
		ContentType: "image/png",
		Data:        []byte("png"),
	}, &project.ID, "", true, false, 0)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	missing := uint(8888)
	updated, err := svc.UpdateImage(res.Image.ID, ImageUpdate{ProjectID: &missing})
	if err != nil {
		t.Fatalf("UpdateImage failed: %v", err)
	}
	if updated.ProjectID != nil {
		t.Errorf("Expected detach on missing project, still attached to %d", *updated.ProjectID)
	}
}
