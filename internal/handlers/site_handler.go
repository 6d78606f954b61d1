package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/internal/services"
)

// SiteHandler serves the remaining page-content endpoints: legacy
// works, authors, members and the about copy.
type SiteHandler struct {
	siteService *services.SiteService
}

func NewSiteHandler(siteService *services.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// GET /works
func (h *SiteHandler) GetAllWorks(c *gin.Context) {
	works, err := h.siteService.GetAllWorks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve works"})
		return
	}
	c.JSON(http.StatusOK, works)
}

// GET /works/:id
func (h *SiteHandler) GetWork(c *gin.Context) {
	workID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work ID"})
		return
	}
	work, err := h.siteService.GetWorkByID(workID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

// POST /works
func (h *SiteHandler) CreateWork(c *gin.Context) {
	var work models.Work
	if err := c.ShouldBindJSON(&work); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.siteService.CreateWork(&work); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, work)
}

// PUT /works/:id
func (h *SiteHandler) UpdateWork(c *gin.Context) {
	workID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work ID"})
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	work, err := h.siteService.UpdateWork(workID, req.Title, req.Description, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}

// DELETE /works/:id
func (h *SiteHandler) DeleteWork(c *gin.Context) {
	workID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work ID"})
		return
	}
	if err := h.siteService.DeleteWork(workID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Work deleted successfully", "work_id": workID})
}

// GET /authors
func (h *SiteHandler) GetAllAuthors(c *gin.Context) {
	authors, err := h.siteService.GetAllAuthors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve authors"})
		return
	}
	c.JSON(http.StatusOK, authors)
}

// POST /authors
func (h *SiteHandler) CreateAuthor(c *gin.Context) {
	var author models.Author
	if err := c.ShouldBindJSON(&author); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.siteService.CreateAuthor(&author); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

// DELETE /authors/:id
func (h *SiteHandler) DeleteAuthor(c *gin.Context) {
	authorID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author ID"})
		return
	}
	if err := h.siteService.DeleteAuthor(authorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Author deleted successfully", "author_id": authorID})
}

// GET /members
func (h *SiteHandler) GetAllMembers(c *gin.Context) {
	members, err := h.siteService.GetAllMembers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve members"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// POST /members
func (h *SiteHandler) CreateMember(c *gin.Context) {
	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.siteService.CreateMember(&member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// DELETE /members/:id
func (h *SiteHandler) DeleteMember(c *gin.Context) {
	memberID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}
	if err := h.siteService.DeleteMember(memberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully", "member_id": memberID})
}

// GET /about
func (h *SiteHandler) GetAbout(c *gin.Context) {
	about, err := h.siteService.GetAbout()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve about"})
		return
	}
	if about == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "about not found"})
		return
	}
	c.JSON(http.StatusOK, about)
}

// PUT /about
func (h *SiteHandler) UpdateAbout(c *gin.Context) {
	var req struct {
		Description  string `json:"description"`
		Description2 string `json:"description2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	about, err := h.siteService.UpsertAbout(req.Description, req.Description2)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}
