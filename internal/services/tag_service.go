package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

// TagService manages the tag catalog. Link cleanup on delete goes
// through ImageTagService so the dangling-link invariant lives in one
// place.
type TagService struct {
	db              *gorm.DB
	imageTagService *ImageTagService
}

func NewTagService(db *gorm.DB, imageTagService *ImageTagService) *TagService {
	return &TagService{db: db, imageTagService: imageTagService}
}

// GetAllTags returns every tag.
func (s *TagService) GetAllTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	return tags, nil
}

// GetTagByID returns a single tag.
func (s *TagService) GetTagByID(tagID uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("tag not found with id: %d", tagID)
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return &tag, nil
}

// CreateTag creates a tag. The name is trimmed and must be non-blank
// and unique (case-sensitive exact match).
func (s *TagService) CreateTag(name, description, color string) (*models.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errs.Validation("tag name cannot be empty")
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).Where("name = ?", trimmed).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return nil, errs.Conflictf("tag with name '%s' already exists", trimmed)
	}

	tag := &models.Tag{
		Name:        trimmed,
		CreatedAt:   models.Now(),
		Description: description,
		Color:       color,
	}
	if err := s.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflictf("tag with name '%s' already exists", trimmed)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// UpdateTag renames a tag, re-checking uniqueness against everything
// but itself. Description and color are overwritten only when supplied.
func (s *TagService) UpdateTag(tagID uint, name string, description, color *string) (*models.Tag, error) {
	tag, err := s.GetTagByID(tagID)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errs.Validation("tag name cannot be empty")
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).
		Where("name = ? AND id <> ?", trimmed, tagID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return nil, errs.Conflictf("tag with name '%s' already exists", trimmed)
	}

	tag.Name = trimmed
	if description != nil {
		tag.Description = *description
	}
	if color != nil {
		tag.Color = *color
	}

	if err := s.db.Save(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflictf("tag with name '%s' already exists", trimmed)
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag removes a tag and, first, every link row that references
// it — one transaction, so a failed cleanup leaves the tag in place.
func (s *TagService) DeleteTag(tagID uint) error {
	tag, err := s.GetTagByID(tagID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.imageTagService.removeAllForTag(tx, tagID); err != nil {
			return err
		}
		if err := tx.Delete(tag).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}

// LinkedImageCount reports how many images currently reference a tag.
func (s *TagService) LinkedImageCount(tagID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.ImageTag{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}
