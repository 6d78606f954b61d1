package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	ProjectName    string `json:"project_name"`
	Description    string `json:"description"`
	IsAvailable    bool   `json:"is_available"`
	Duration       string `json:"duration"`
	GrossFloorArea string `json:"gross_floor_area"`
	Client         string `json:"client"`
	Architect      string `json:"architect"`
	Index          int    `json:"index"`
	ImageIDs       []uint `json:"image_ids"`
}

// GetAllProjects lists every project with its representative image
// GET /projects
func (h *ProjectHandler) GetAllProjects(c *gin.Context) {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject returns one project, or 404 if absent
// GET /projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	project, err := h.projectService.GetProjectByID(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject creates a project, optionally attaching images
// POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.ProjectInput{
		Name:           req.ProjectName,
		Description:    req.Description,
		IsAvailable:    req.IsAvailable,
		Duration:       req.Duration,
		GrossFloorArea: req.GrossFloorArea,
		Client:         req.Client,
		Architect:      req.Architect,
		Index:          req.Index,
	}

	project, err := h.projectService.CreateProjectWithImages(input, req.ImageIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// UpdateProject applies a partial update
// PUT /projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req struct {
		ProjectName    *string `json:"project_name"`
		Description    *string `json:"description"`
		IsAvailable    *bool   `json:"is_available"`
		Duration       *string `json:"duration"`
		GrossFloorArea *string `json:"gross_floor_area"`
		Client         *string `json:"client"`
		Architect      *string `json:"architect"`
		Index          *int    `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(projectID, services.ProjectUpdate{
		Name:           req.ProjectName,
		Description:    req.Description,
		IsAvailable:    req.IsAvailable,
		Duration:       req.Duration,
		GrossFloorArea: req.GrossFloorArea,
		Client:         req.Client,
		Architect:      req.Architect,
		Index:          req.Index,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// SetImages replaces the project's image set
// PUT /projects/:id/images
func (h *ProjectHandler) SetImages(c *gin.Context) {
	h.changeImages(c, h.projectService.SetImages)
}

// AddImages attaches images without detaching the rest
// POST /projects/:id/images
func (h *ProjectHandler) AddImages(c *gin.Context) {
	h.changeImages(c, h.projectService.AddImages)
}

// RemoveImages detaches the listed images from this project
// DELETE /projects/:id/images
func (h *ProjectHandler) RemoveImages(c *gin.Context) {
	h.changeImages(c, h.projectService.RemoveImages)
}

func (h *ProjectHandler) changeImages(c *gin.Context, op func(uint, []uint) error) {
	projectID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req struct {
		ImageIDs []uint `json:"image_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := op(projectID, req.ImageIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project images updated", "project_id": projectID})
}

// DeleteProject removes a project; its images and their links cascade
// DELETE /projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	if err := h.projectService.DeleteProject(projectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully", "project_id": projectID})
}
