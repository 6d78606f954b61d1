package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/archfolio/backend/internal/config"
	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
	"github.com/archfolio/backend/pkg/validation"
)

// ImageService owns the image lifecycle: upload validation, disk
// persistence, record management and cascading cleanup.
type ImageService struct {
	db             *gorm.DB
	cfg            *config.Config
	storageService *StorageService
}

func NewImageService(db *gorm.DB, cfg *config.Config, storageService *StorageService) *ImageService {
	return &ImageService{
		db:             db,
		cfg:            cfg,
		storageService: storageService,
	}
}

// ImageUpload is one incoming file of an upload request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadResult is the persisted image plus the request metadata the
// client gets echoed back.
type UploadResult struct {
	Image            *models.Image
	OriginalFileName string
	FileSize         int64
	ContentType      string
}

// TagInfo is the tag summary embedded in image listings.
type TagInfo struct {
	ID        uint   `json:"id"`
	TagName   string `json:"tag_name"`
	CreatedAt string `json:"create_date_time"`
}

// ImageWithTags is the listing aggregate: an image with its tag list
// and owning-project fields resolved.
type ImageWithTags struct {
	ID          uint      `json:"id"`
	ImageURL    string    `json:"image_url"`
	FileName    string    `json:"file_name"`
	CreatedAt   string    `json:"create_date_time"`
	Description string    `json:"description,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
	Index       int       `json:"index"`
	IsShow      bool      `json:"is_show"`
	IsBasic     bool      `json:"is_basic"`
	Tags        []TagInfo `json:"tags"`
}

// GetAllImages returns every image ordered by display index, each with
// its tag list. Tags for the whole result set are fetched in one query
// and grouped in memory.
func (s *ImageService) GetAllImages() ([]ImageWithTags, error) {
	var images []models.Image
	if err := s.db.Preload("Project").Order("display_index ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	imageIDs := make([]uint, len(images))
	for i, img := range images {
		imageIDs[i] = img.ID
	}

	tagsByImage := make(map[uint][]TagInfo)
	if len(imageIDs) > 0 {
		var links []models.ImageTag
		if err := s.db.Preload("Tag").Where("image_id IN ?", imageIDs).Find(&links).Error; err != nil {
			return nil, fmt.Errorf("failed to load image tags: %w", err)
		}
		for _, link := range links {
			if link.Tag == nil {
				continue
			}
			tagsByImage[link.ImageID] = append(tagsByImage[link.ImageID], TagInfo{
				ID:        link.Tag.ID,
				TagName:   link.Tag.Name,
				CreatedAt: link.Tag.CreatedAt,
			})
		}
	}

	result := make([]ImageWithTags, len(images))
	for i, img := range images {
		entry := ImageWithTags{
			ID:        img.ID,
			ImageURL:  img.ImageURL,
			FileName:  img.FileName,
			CreatedAt: img.CreatedAt,
			Index:     img.DisplayIndex,
			IsShow:    img.IsShow,
			IsBasic:   img.IsBasic,
			Tags:      tagsByImage[img.ID],
		}
		if entry.Tags == nil {
			entry.Tags = []TagInfo{}
		}
		if img.Project != nil {
			entry.Description = img.Project.Description
			entry.ProjectName = img.Project.Name
		}
		result[i] = entry
	}
	return result, nil
}

// UploadImage validates and stores a single file, then persists the
// image record. A projectID that does not resolve attaches nothing and
// is not an error.
func (s *ImageService) UploadImage(upload ImageUpload, projectID *uint, description string, isShow, isBasic bool, index int) (*UploadResult, error) {
	return s.uploadOne(s.db, upload, projectID, description, isShow, isBasic, index)
}

// UploadImages stores a batch in input order, assigning each file its
// position as display index. The whole batch runs in one transaction;
// files already written to disk are removed again when it fails.
func (s *ImageService) UploadImages(uploads []ImageUpload, projectID *uint, description string, isShow, isBasic bool) ([]*UploadResult, error) {
	if len(uploads) == 0 {
		return nil, errs.Validation("no files provided")
	}

	results := make([]*UploadResult, 0, len(uploads))
	var written []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, upload := range uploads {
			res, err := s.uploadOne(tx, upload, projectID, description, isShow, isBasic, i)
			if err != nil {
				return err
			}
			written = append(written, res.Image.FileName)
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		for _, name := range written {
			if rmErr := s.storageService.Remove(name); rmErr != nil {
				log.Printf("WARN: failed to clean up %s after aborted batch: %v", name, rmErr)
			}
		}
		return nil, err
	}
	return results, nil
}

func (s *ImageService) uploadOne(tx *gorm.DB, upload ImageUpload, projectID *uint, description string, isShow, isBasic bool, index int) (*UploadResult, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	storedName := s.storageService.BuildFileName(upload.FileName)
	if _, err := s.storageService.Save(storedName, upload.Data); err != nil {
		return nil, errs.Internal("failed to store uploaded file", err)
	}

	// Resolve the parent project if one was given; a missing id
	// simply leaves the image unattached.
	var project *models.Project
	if projectID != nil {
		var p models.Project
		if err := tx.First(&p, *projectID).Error; err == nil {
			project = &p
		}
	}

	image := &models.Image{
		FileName:     storedName,
		ImageURL:     s.storageService.PublicURL(storedName),
		IsShow:       isShow,
		IsBasic:      isBasic,
		DisplayIndex: index,
		Description:  description,
		CreatedAt:    models.Now(),
	}
	if project != nil {
		image.ProjectID = &project.ID
	}

	if err := tx.Create(image).Error; err != nil {
		// The record failed, so the file must not stay behind.
		_ = s.storageService.Remove(storedName)
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}
	image.Project = project

	return &UploadResult{
		Image:            image,
		OriginalFileName: upload.FileName,
		FileSize:         int64(len(upload.Data)),
		ContentType:      upload.ContentType,
	}, nil
}

func (s *ImageService) validateUpload(upload ImageUpload) error {
	if len(upload.Data) == 0 {
		return errs.Validation("file is empty")
	}
	if int64(len(upload.Data)) > s.cfg.UploadMaxFileSize {
		return errs.Validationf("file size exceeds maximum limit of %d bytes", s.cfg.UploadMaxFileSize)
	}
	if !validation.ValidImageContentType(upload.ContentType) {
		return errs.Validation("invalid file type. Only JPG, JPEG, PNG, GIF, WEBP files are allowed")
	}
	return nil
}

// GetImageByID returns a single image record.
func (s *ImageService) GetImageByID(imageID uint) (*models.Image, error) {
	var image models.Image
	if err := s.db.Preload("Project").First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("image not found with id: %d", imageID)
		}
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return &image, nil
}

// DeleteImage removes an image record and its backing file. Link rows
// go with the record through the store-level cascade. File removal is
// best-effort: a missing file is not an error.
func (s *ImageService) DeleteImage(imageID uint) error {
	image, err := s.GetImageByID(imageID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(image).Error; err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}

	if err := s.storageService.Remove(image.FileName); err != nil {
		log.Printf("WARN: failed to remove file %s for deleted image %d: %v", image.FileName, imageID, err)
	}
	return nil
}

// DeleteImageExplicit is the variant for stores where the cascade
// cannot be relied upon: it bulk-deletes the link rows first, in the
// same transaction as the image record.
func (s *ImageService) DeleteImageExplicit(imageID uint) error {
	image, err := s.GetImageByID(imageID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", imageID).Delete(&models.ImageTag{}).Error; err != nil {
			return fmt.Errorf("failed to delete image tags: %w", err)
		}
		if err := tx.Delete(image).Error; err != nil {
			return fmt.Errorf("failed to delete image record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.storageService.Remove(image.FileName); err != nil {
		log.Printf("WARN: failed to remove file %s for deleted image %d: %v", image.FileName, imageID, err)
	}
	return nil
}

// ImageUpdate carries the optional fields of a partial image update.
type ImageUpdate struct {
	ProjectID   *uint
	Description *string
	IsShow      *bool
	IsBasic     *bool
	Index       *int
	FileName    *string
}

// UpdateImage applies the non-nil fields of upd. Reassigning the
// project replaces the parent reference entirely.
func (s *ImageService) UpdateImage(imageID uint, upd ImageUpdate) (*models.Image, error) {
	image, err := s.GetImageByID(imageID)
	if err != nil {
		return nil, err
	}

	if upd.ProjectID != nil {
		var p models.Project
		if err := s.db.First(&p, *upd.ProjectID).Error; err == nil {
			image.ProjectID = &p.ID
			image.Project = &p
		} else {
			image.ProjectID = nil
			image.Project = nil
		}
	}
	if upd.Description != nil {
		image.Description = *upd.Description
	}
	if upd.IsShow != nil {
		image.IsShow = *upd.IsShow
	}
	if upd.IsBasic != nil {
		image.IsBasic = *upd.IsBasic
	}
	if upd.Index != nil {
		image.DisplayIndex = *upd.Index
	}
	if upd.FileName != nil && *upd.FileName != "" {
		// Stored name only; the URL keeps pointing at the file on disk.
		image.FileName = *upd.FileName
	}

	if err := s.db.Omit("Project", "Links").Save(image).Error; err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}
	return image, nil
}
