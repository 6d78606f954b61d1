package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

// NewsService manages news articles.
type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// GetPublishedNews returns published articles, newest first.
func (s *NewsService) GetPublishedNews() ([]models.News, error) {
	var news []models.News
	if err := s.db.Where("is_published = ?", true).Order("created_at DESC").Find(&news).Error; err != nil {
		return nil, fmt.Errorf("failed to load news: %w", err)
	}
	return news, nil
}

// GetPublishedNewsPage returns one page of published articles plus the
// total published count.
func (s *NewsService) GetPublishedNewsPage(limit, offset int) ([]models.News, int64, error) {
	var news []models.News
	var total int64

	query := s.db.Model(&models.News{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count news: %w", err)
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&news).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to load news: %w", err)
	}
	return news, total, nil
}

// SearchNewsByTitle returns published articles whose title contains
// the query, newest first.
func (s *NewsService) SearchNewsByTitle(title string) ([]models.News, error) {
	var news []models.News
	err := s.db.Where("is_published = ? AND title LIKE ?", true, "%"+title+"%").
		Order("created_at DESC").Find(&news).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search news: %w", err)
	}
	return news, nil
}

// GetAllNews returns every article regardless of publication state.
func (s *NewsService) GetAllNews() ([]models.News, error) {
	var news []models.News
	if err := s.db.Order("created_at DESC").Find(&news).Error; err != nil {
		return nil, fmt.Errorf("failed to load news: %w", err)
	}
	return news, nil
}

// GetNewsByID returns a single article.
func (s *NewsService) GetNewsByID(newsID uint) (*models.News, error) {
	var news models.News
	if err := s.db.First(&news, newsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("news not found with id: %d", newsID)
		}
		return nil, fmt.Errorf("failed to load news: %w", err)
	}
	return &news, nil
}

// CreateNews persists a new article.
func (s *NewsService) CreateNews(news *models.News) error {
	if news.Title == "" {
		return errs.Validation("title is required")
	}
	if err := s.db.Create(news).Error; err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}
	return nil
}

// NewsUpdate carries the optional fields of a partial update.
type NewsUpdate struct {
	Title       *string
	Contents    *string
	ImageURL    *string
	FileName    *string
	FileType    *string
	IsPublished *bool
	Author      *string
	Summary     *string
}

// UpdateNews applies the non-nil fields of upd.
func (s *NewsService) UpdateNews(newsID uint, upd NewsUpdate) (*models.News, error) {
	news, err := s.GetNewsByID(newsID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		news.Title = *upd.Title
	}
	if upd.Contents != nil {
		news.Contents = *upd.Contents
	}
	if upd.ImageURL != nil {
		news.ImageURL = *upd.ImageURL
	}
	if upd.FileName != nil {
		news.FileName = *upd.FileName
	}
	if upd.FileType != nil {
		news.FileType = *upd.FileType
	}
	if upd.IsPublished != nil {
		news.IsPublished = *upd.IsPublished
	}
	if upd.Author != nil {
		news.Author = *upd.Author
	}
	if upd.Summary != nil {
		news.Summary = *upd.Summary
	}

	if err := s.db.Save(news).Error; err != nil {
		return nil, fmt.Errorf("failed to update news: %w", err)
	}
	return news, nil
}

// DeleteNews removes an article.
func (s *NewsService) DeleteNews(newsID uint) error {
	news, err := s.GetNewsByID(newsID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(news).Error; err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	return nil
}
