package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/internal/services"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// GetAllImages lists every image with its tags
// GET /images
func (h *ImageHandler) GetAllImages(c *gin.Context) {
	images, err := h.imageService.GetAllImages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

// UploadImage handles single image upload
// POST /images/upload
// Multipart form: file (required), projectId, description, isShow, isBasic, index
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	projectID := optionalIDForm(c, "projectId")
	description := c.PostForm("description")
	isShow := c.DefaultPostForm("isShow", "true") == "true"
	isBasic := c.DefaultPostForm("isBasic", "false") == "true"
	index, _ := strconv.Atoi(c.DefaultPostForm("index", "0"))

	upload := services.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	result, err := h.imageService.UploadImage(upload, projectID, description, isShow, isBasic, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse(result, "Image uploaded successfully"))
}

// UploadImages handles multi-file upload; the display index of each
// image is its position in the request
// POST /images/upload/multiple
func (h *ImageHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse multipart form"})
		return
	}
	files, ok := form.File["files"]
	if !ok || len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files is required"})
		return
	}

	projectID := optionalIDForm(c, "projectId")
	description := c.PostForm("description")
	isShow := c.DefaultPostForm("isShow", "true") == "true"
	isBasic := c.DefaultPostForm("isBasic", "false") == "true"

	uploads := make([]services.ImageUpload, 0, len(files))
	for _, fh := range files {
		data, err := readMultipartFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file " + fh.Filename})
			return
		}
		uploads = append(uploads, services.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	results, err := h.imageService.UploadImages(uploads, projectID, description, isShow, isBasic)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]gin.H, len(results))
	for i, result := range results {
		responses[i] = uploadResponse(result, "Image uploaded successfully")
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateImage applies a partial update
// PUT /images/:id
func (h *ImageHandler) UpdateImage(c *gin.Context) {
	imageID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image ID"})
		return
	}

	var req struct {
		ProjectID   *uint   `json:"project_id"`
		Description *string `json:"description"`
		IsShow      *bool   `json:"is_show"`
		IsBasic     *bool   `json:"is_basic"`
		Index       *int    `json:"index"`
		FileName    *string `json:"file_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := h.imageService.UpdateImage(imageID, services.ImageUpdate{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		IsShow:      req.IsShow,
		IsBasic:     req.IsBasic,
		Index:       req.Index,
		FileName:    req.FileName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// DeleteImage removes an image, its link rows and its file
// DELETE /images/:id
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image ID"})
		return
	}

	if err := h.imageService.DeleteImage(imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image and related tags deleted successfully", "image_id": imageID})
}

// DeleteImageExplicit is the delete variant that clears the link rows
// itself instead of relying on the store cascade
// DELETE /images/:id/explicit
func (h *ImageHandler) DeleteImageExplicit(c *gin.Context) {
	imageID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image ID"})
		return
	}

	if err := h.imageService.DeleteImageExplicit(imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully", "image_id": imageID})
}

func uploadResponse(result *services.UploadResult, message string) gin.H {
	img := result.Image
	resp := gin.H{
		"id":                 img.ID,
		"file_name":          img.FileName,
		"original_file_name": result.OriginalFileName,
		"image_url":          img.ImageURL,
		"file_size":          result.FileSize,
		"content_type":       result.ContentType,
		"create_date_time":   img.CreatedAt,
		"is_show":            img.IsShow,
		"is_basic":           img.IsBasic,
		"index":              img.DisplayIndex,
		"message":            message,
	}
	if img.ProjectID != nil {
		resp["project_id"] = *img.ProjectID
	}
	if img.Project != nil {
		resp["project_name"] = img.Project.Name
	}
	return resp
}

func optionalIDForm(c *gin.Context, field string) *uint {
	value := c.PostForm(field)
	if value == "" {
		return nil
	}
	id, ok := parseID(value)
	if !ok {
		return nil
	}
	return &id
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
