package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

// SiteService covers the remaining single-entity page content: legacy
// works, authors, team members and the about copy.
type SiteService struct {
	db *gorm.DB
}

func NewSiteService(db *gorm.DB) *SiteService {
	return &SiteService{db: db}
}

func (s *SiteService) GetAllWorks() ([]models.Work, error) {
	var works []models.Work
	if err := s.db.Find(&works).Error; err != nil {
		return nil, fmt.Errorf("failed to load works: %w", err)
	}
	return works, nil
}

func (s *SiteService) GetWorkByID(workID uint) (*models.Work, error) {
	var work models.Work
	if err := s.db.First(&work, workID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("work not found with id: %d", workID)
		}
		return nil, fmt.Errorf("failed to load work: %w", err)
	}
	return &work, nil
}

func (s *SiteService) CreateWork(work *models.Work) error {
	if err := s.db.Create(work).Error; err != nil {
		return fmt.Errorf("failed to create work: %w", err)
	}
	return nil
}

func (s *SiteService) UpdateWork(workID uint, title, description, imageURL *string) (*models.Work, error) {
	work, err := s.GetWorkByID(workID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		work.Title = *title
	}
	if description != nil {
		work.Description = *description
	}
	if imageURL != nil {
		work.ImageURL = *imageURL
	}
	if err := s.db.Save(work).Error; err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}
	return work, nil
}

func (s *SiteService) DeleteWork(workID uint) error {
	work, err := s.GetWorkByID(workID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(work).Error; err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}
	return nil
}

func (s *SiteService) GetAllAuthors() ([]models.Author, error) {
	var authors []models.Author
	if err := s.db.Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	return authors, nil
}

func (s *SiteService) CreateAuthor(author *models.Author) error {
	if err := s.db.Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

func (s *SiteService) DeleteAuthor(authorID uint) error {
	res := s.db.Delete(&models.Author{}, authorID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete author: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFoundf("author not found with id: %d", authorID)
	}
	return nil
}

func (s *SiteService) GetAllMembers() ([]models.Member, error) {
	var members []models.Member
	if err := s.db.Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	return members, nil
}

func (s *SiteService) CreateMember(member *models.Member) error {
	if err := s.db.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *SiteService) DeleteMember(memberID uint) error {
	res := s.db.Delete(&models.Member{}, memberID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFoundf("member not found with id: %d", memberID)
	}
	return nil
}

func (s *SiteService) GetAbout() (*models.About, error) {
	var about models.About
	if err := s.db.First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load about: %w", err)
	}
	return &about, nil
}

func (s *SiteService) UpsertAbout(description, description2 string) (*models.About, error) {
	about, err := s.GetAbout()
	if err != nil {
		return nil, err
	}
	if about == nil {
		about = &models.About{Description: description, Description2: description2}
		if err := s.db.Create(about).Error; err != nil {
			return nil, fmt.Errorf("failed to create about: %w", err)
		}
		return about, nil
	}
	about.Description = description
	about.Description2 = description2
	if err := s.db.Save(about).Error; err != nil {
		return nil, fmt.Errorf("failed to update about: %w", err)
	}
	return about, nil
}
