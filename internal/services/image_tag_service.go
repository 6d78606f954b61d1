package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

// ImageTagService manages the image<->tag associations. It is the one
// place that creates and cleans up link rows, so the "no dangling
// links" invariant is enforced here for both sides.
type ImageTagService struct {
	db *gorm.DB
}

func NewImageTagService(db *gorm.DB) *ImageTagService {
	return &ImageTagService{db: db}
}

// LinkDetail is a link row with the tag's name resolved for display.
type LinkDetail struct {
	ID        uint   `json:"id"`
	ImageID   uint   `json:"image_id"`
	TagID     uint   `json:"tag_id"`
	TagName   string `json:"tag_name"`
	CreatedAt string `json:"create_date_time"`
}

// Link associates an image with a tag. Both sides must exist, and at
// most one link may exist per pair. The pre-check gives a friendly
// message cheaply; the composite unique index closes the race when two
// requests pass the check at once.
func (s *ImageTagService) Link(imageID, tagID uint) (*LinkDetail, error) {
	var image models.Image
	if err := s.db.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("image not found with id: %d", imageID)
		}
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	var tag models.Tag
	if err := s.db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("tag not found with id: %d", tagID)
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.ImageTag{}).
		Where("image_id = ? AND tag_id = ?", imageID, tagID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing link: %w", err)
	}
	if count > 0 {
		return nil, errs.Conflict("image and tag are already linked")
	}

	link := models.NewImageTag(imageID, tagID)
	if err := s.db.Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("image and tag are already linked")
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return &LinkDetail{
		ID:        link.ID,
		ImageID:   link.ImageID,
		TagID:     tag.ID,
		TagName:   tag.Name,
		CreatedAt: link.CreatedAt,
	}, nil
}

// Unlink removes the link row for the pair. Removing a pair that was
// never linked is a no-op.
func (s *ImageTagService) Unlink(imageID, tagID uint) error {
	if err := s.db.Where("image_id = ? AND tag_id = ?", imageID, tagID).
		Delete(&models.ImageTag{}).Error; err != nil {
		return fmt.Errorf("failed to unlink: %w", err)
	}
	return nil
}

// GetTagsByImage returns every tag linked to an image in one query.
func (s *ImageTagService) GetTagsByImage(imageID uint) ([]models.Tag, error) {
	if err := s.requireImage(imageID); err != nil {
		return nil, err
	}
	var tags []models.Tag
	err := s.db.Model(&models.Tag{}).
		Joins("JOIN image_tags ON image_tags.tag_id = tags.id").
		Where("image_tags.image_id = ?", imageID).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tags for image: %w", err)
	}
	return tags, nil
}

// GetImagesByTag returns every image linked to a tag in one query.
func (s *ImageTagService) GetImagesByTag(tagID uint) ([]models.Image, error) {
	if err := s.requireTag(tagID); err != nil {
		return nil, err
	}
	var images []models.Image
	err := s.db.Model(&models.Image{}).
		Joins("JOIN image_tags ON image_tags.image_id = images.id").
		Where("image_tags.tag_id = ?", tagID).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load images for tag: %w", err)
	}
	return images, nil
}

// RemoveAllForImage bulk-deletes every link of an image.
func (s *ImageTagService) RemoveAllForImage(imageID uint) error {
	if err := s.requireImage(imageID); err != nil {
		return err
	}
	if err := s.db.Where("image_id = ?", imageID).Delete(&models.ImageTag{}).Error; err != nil {
		return fmt.Errorf("failed to delete links for image: %w", err)
	}
	return nil
}

// RemoveAllForTag bulk-deletes every link of a tag. The tag manager
// calls this before deleting the tag row itself.
func (s *ImageTagService) RemoveAllForTag(tagID uint) error {
	if err := s.requireTag(tagID); err != nil {
		return err
	}
	return s.removeAllForTag(s.db, tagID)
}

// removeAllForTag is the transaction-aware cleanup shared with
// TagService.Delete.
func (s *ImageTagService) removeAllForTag(tx *gorm.DB, tagID uint) error {
	if err := tx.Where("tag_id = ?", tagID).Delete(&models.ImageTag{}).Error; err != nil {
		return fmt.Errorf("failed to delete links for tag: %w", err)
	}
	return nil
}

// GetAll returns every link row enriched with the tag's name.
func (s *ImageTagService) GetAll() ([]LinkDetail, error) {
	var links []models.ImageTag
	if err := s.db.Preload("Tag").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	result := make([]LinkDetail, len(links))
	for i, link := range links {
		result[i] = LinkDetail{
			ID:        link.ID,
			ImageID:   link.ImageID,
			TagID:     link.TagID,
			CreatedAt: link.CreatedAt,
		}
		if link.Tag != nil {
			result[i].TagName = link.Tag.Name
		}
	}
	return result, nil
}

func (s *ImageTagService) requireImage(imageID uint) error {
	var count int64
	if err := s.db.Model(&models.Image{}).Where("id = ?", imageID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check image: %w", err)
	}
	if count == 0 {
		return errs.NotFoundf("image not found with id: %d", imageID)
	}
	return nil
}

func (s *ImageTagService) requireTag(tagID uint) error {
	var count int64
	if err := s.db.Model(&models.Tag{}).Where("id = ?", tagID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check tag: %w", err)
	}
	if count == 0 {
		return errs.NotFoundf("tag not found with id: %d", tagID)
	}
	return nil
}
