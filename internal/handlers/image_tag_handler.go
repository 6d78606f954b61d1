package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/internal/services"
)

type ImageTagHandler struct {
	imageTagService *services.ImageTagService
}

func NewImageTagHandler(imageTagService *services.ImageTagService) *ImageTagHandler {
	return &ImageTagHandler{imageTagService: imageTagService}
}

// Link associates an image with a tag
// POST /api/image-tags/link?imageId=93&tagId=41
func (h *ImageTagHandler) Link(c *gin.Context) {
	imageID, ok := parseID(c.Query("imageId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid imageId"})
		return
	}
	tagID, ok := parseID(c.Query("tagId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tagId"})
		return
	}

	link, err := h.imageTagService.Link(imageID, tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// Unlink removes the association; unlinking a pair that does not exist
// succeeds silently
// DELETE /api/image-tags/unlink?imageId=93&tagId=41
func (h *ImageTagHandler) Unlink(c *gin.Context) {
	imageID, ok := parseID(c.Query("imageId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid imageId"})
		return
	}
	tagID, ok := parseID(c.Query("tagId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tagId"})
		return
	}

	if err := h.imageTagService.Unlink(imageID, tagID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetTagsByImage lists every tag linked to an image
// GET /api/image-tags/image/:imageId/tags
func (h *ImageTagHandler) GetTagsByImage(c *gin.Context) {
	imageID, ok := parseID(c.Param("imageId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image ID"})
		return
	}

	tags, err := h.imageTagService.GetTagsByImage(imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetImagesByTag lists every image linked to a tag
// GET /api/image-tags/tag/:tagId/images
func (h *ImageTagHandler) GetImagesByTag(c *gin.Context) {
	tagID, ok := parseID(c.Param("tagId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	images, err := h.imageTagService.GetImagesByTag(tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// RemoveAllForImage deletes every link of an image
// DELETE /api/image-tags/image/:imageId/tags
func (h *ImageTagHandler) RemoveAllForImage(c *gin.Context) {
	imageID, ok := parseID(c.Param("imageId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image ID"})
		return
	}

	if err := h.imageTagService.RemoveAllForImage(imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All tags removed from image", "image_id": imageID})
}

// RemoveAllForTag deletes every link of a tag
// DELETE /api/image-tags/tag/:tagId/images
func (h *ImageTagHandler) RemoveAllForTag(c *gin.Context) {
	tagID, ok := parseID(c.Param("tagId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag ID"})
		return
	}

	if err := h.imageTagService.RemoveAllForTag(tagID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All images removed from tag", "tag_id": tagID})
}

// GetAll lists every link row with its tag name
// GET /api/image-tags
func (h *ImageTagHandler) GetAll(c *gin.Context) {
	links, err := h.imageTagService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve links"})
		return
	}
	c.JSON(http.StatusOK, links)
}
