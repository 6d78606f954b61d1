package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/internal/services"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// GetAllTags lists every tag
// GET /api/tags
func (h *TagHandler) GetAllTags(c *gin.Context) {
	tags, err := h.tagService.GetAllTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tags"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag returns one tag
// GET /api/tags/:id
func (h *TagHandler) GetTag(c *gin.Context) {
	tagID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	tag, err := h.tagService.GetTagByID(tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// CreateTag creates a tag
// POST /api/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req struct {
		TagName     string `json:"tag_name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(req.TagName, req.Description, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// UpdateTag renames a tag and optionally overwrites description/color
// PUT /api/tags/:id
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	var req struct {
		TagName     string  `json:"tag_name"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.UpdateTag(tagID, req.TagName, req.Description, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag removes a tag and its link rows
// DELETE /api/tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	if err := h.tagService.DeleteTag(tagID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully", "tag_id": tagID})
}
