package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

// ProjectService manages portfolio projects and their image
// attachments.
type ProjectService struct {
	db             *gorm.DB
	storageService *StorageService
}

func NewProjectService(db *gorm.DB, storageService *StorageService) *ProjectService {
	return &ProjectService{db: db, storageService: storageService}
}

// ProjectDetail is a project with its representative image URL
// resolved. The representative image is simply the first of the owned
// collection in store order; it is not guaranteed to be the basic one.
type ProjectDetail struct {
	ID              uint   `json:"id"`
	ProjectName     string `json:"project_name"`
	Description     string `json:"description"`
	IsAvailable     bool   `json:"is_available"`
	CreatedDateTime string `json:"created_date_time"`
	Duration        string `json:"duration"`
	GrossFloorArea  string `json:"gross_floor_area"`
	Client          string `json:"client"`
	Architect       string `json:"architect"`
	Index           int    `json:"index"`
	ProjectImageURL string `json:"project_image_url,omitempty"`
}

func projectDetail(p *models.Project) ProjectDetail {
	detail := ProjectDetail{
		ID:              p.ID,
		ProjectName:     p.Name,
		Description:     p.Description,
		IsAvailable:     p.IsAvailable,
		CreatedDateTime: p.CreatedAt,
		Duration:        p.Duration,
		GrossFloorArea:  p.GrossFloorArea,
		Client:          p.Client,
		Architect:       p.Architect,
		Index:           p.DisplayIndex,
	}
	if len(p.Images) > 0 {
		detail.ProjectImageURL = p.Images[0].ImageURL
	}
	return detail
}

// GetAllProjects returns every project ordered by display index, each
// with its representative image URL.
func (s *ProjectService) GetAllProjects() ([]ProjectDetail, error) {
	var projects []models.Project
	if err := s.db.Preload("Images").Order("display_index ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	result := make([]ProjectDetail, len(projects))
	for i := range projects {
		result[i] = projectDetail(&projects[i])
	}
	return result, nil
}

// GetProjectByID returns one project's detail, or (nil, nil) if the id
// does not resolve.
func (s *ProjectService) GetProjectByID(projectID uint) (*ProjectDetail, error) {
	var project models.Project
	if err := s.db.Preload("Images").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	detail := projectDetail(&project)
	return &detail, nil
}

// ProjectInput carries the writable project fields.
type ProjectInput struct {
	Name           string
	Description    string
	IsAvailable    bool
	Duration       string
	GrossFloorArea string
	Client         string
	Architect      string
	Index          int
}

// CreateProject persists a new project with a server timestamp.
func (s *ProjectService) CreateProject(input ProjectInput) (*ProjectDetail, error) {
	project := &models.Project{
		Name:           input.Name,
		Description:    input.Description,
		IsAvailable:    input.IsAvailable,
		CreatedAt:      models.Now(),
		Duration:       input.Duration,
		GrossFloorArea: input.GrossFloorArea,
		Client:         input.Client,
		Architect:      input.Architect,
		DisplayIndex:   input.Index,
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	detail := projectDetail(project)
	return &detail, nil
}

// CreateProjectWithImages creates a project and attaches the listed
// images in the same transaction.
func (s *ProjectService) CreateProjectWithImages(input ProjectInput, imageIDs []uint) (*ProjectDetail, error) {
	detail, err := s.CreateProject(input)
	if err != nil {
		return nil, err
	}
	if len(imageIDs) > 0 {
		if err := s.SetImages(detail.ID, imageIDs); err != nil {
			return nil, err
		}
		return s.GetProjectByID(detail.ID)
	}
	return detail, nil
}

// ProjectUpdate carries the optional fields of a partial update.
type ProjectUpdate struct {
	Name           *string
	Description    *string
	IsAvailable    *bool
	Duration       *string
	GrossFloorArea *string
	Client         *string
	Architect      *string
	Index          *int
}

// UpdateProject applies the non-nil fields of upd.
func (s *ProjectService) UpdateProject(projectID uint, upd ProjectUpdate) (*ProjectDetail, error) {
	var project models.Project
	if err := s.db.Preload("Images").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("project not found with id: %d", projectID)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if upd.IsAvailable != nil {
		project.IsAvailable = *upd.IsAvailable
	}
	if upd.Duration != nil {
		project.Duration = *upd.Duration
	}
	if upd.GrossFloorArea != nil {
		project.GrossFloorArea = *upd.GrossFloorArea
	}
	if upd.Client != nil {
		project.Client = *upd.Client
	}
	if upd.Architect != nil {
		project.Architect = *upd.Architect
	}
	if upd.Index != nil {
		project.DisplayIndex = *upd.Index
	}

	if err := s.db.Omit("Images").Save(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	detail := projectDetail(&project)
	return &detail, nil
}

// SetImages replaces the project's image set: every currently owned
// image is detached, then each listed id is attached. The whole swap
// runs in one transaction so a bad id reverts the detachments too.
func (s *ProjectService) SetImages(projectID uint, imageIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		if err := tx.Model(&models.Image{}).
			Where("project_id = ?", projectID).
			Update("project_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach images: %w", err)
		}
		return attachImages(tx, projectID, imageIDs)
	})
}

// AddImages attaches the listed images without touching the rest.
func (s *ProjectService) AddImages(projectID uint, imageIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		return attachImages(tx, projectID, imageIDs)
	})
}

// RemoveImages detaches the listed images, but only those whose parent
// actually is this project.
func (s *ProjectService) RemoveImages(projectID uint, imageIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		for _, imageID := range imageIDs {
			var image models.Image
			if err := tx.First(&image, imageID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.NotFoundf("image not found with id: %d", imageID)
				}
				return fmt.Errorf("failed to load image: %w", err)
			}
			if image.ProjectID == nil || *image.ProjectID != projectID {
				continue
			}
			if err := tx.Model(&image).Update("project_id", nil).Error; err != nil {
				return fmt.Errorf("failed to detach image %d: %w", imageID, err)
			}
		}
		return nil
	})
}

// DeleteProject removes a project. The store cascade deletes its
// images and their link rows; the backing files are removed from disk
// best-effort afterwards.
func (s *ProjectService) DeleteProject(projectID uint) error {
	var project models.Project
	if err := s.db.Preload("Images").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFoundf("project not found with id: %d", projectID)
		}
		return fmt.Errorf("failed to load project: %w", err)
	}

	if err := s.db.Select("Images").Delete(&project).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	for _, image := range project.Images {
		if err := s.storageService.Remove(image.FileName); err != nil {
			log.Printf("WARN: failed to remove file %s for deleted project %d: %v", image.FileName, projectID, err)
		}
	}
	return nil
}

func requireProject(tx *gorm.DB, projectID uint) error {
	var count int64
	if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if count == 0 {
		return errs.NotFoundf("project not found with id: %d", projectID)
	}
	return nil
}

func attachImages(tx *gorm.DB, projectID uint, imageIDs []uint) error {
	for _, imageID := range imageIDs {
		var image models.Image
		if err := tx.First(&image, imageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFoundf("image not found with id: %d", imageID)
			}
			return fmt.Errorf("failed to load image: %w", err)
		}
		if err := tx.Model(&image).Update("project_id", projectID).Error; err != nil {
			return fmt.Errorf("failed to attach image %d: %w", imageID, err)
		}
	}
	return nil
}
