package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/internal/services"
)

type NewsHandler struct {
	newsService *services.NewsService
}

func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// GetNews lists published articles; supports ?title= search and
// ?page=&limit= paging
// GET /api/news
func (h *NewsHandler) GetNews(c *gin.Context) {
	if title := c.Query("title"); title != "" {
		news, err := h.newsService.SearchNewsByTitle(title)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve news"})
			return
		}
		c.JSON(http.StatusOK, news)
		return
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, _ := strconv.Atoi(pageStr)
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}
		news, total, err := h.newsService.GetPublishedNewsPage(limit, (page-1)*limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve news"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"news": news,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
		return
	}

	news, err := h.newsService.GetPublishedNews()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve news"})
		return
	}
	c.JSON(http.StatusOK, news)
}

// GetAllNews lists every article including drafts
// GET /api/news/all
func (h *NewsHandler) GetAllNews(c *gin.Context) {
	news, err := h.newsService.GetAllNews()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve news"})
		return
	}
	c.JSON(http.StatusOK, news)
}

// GetNewsByID returns one article
// GET /api/news/:id
func (h *NewsHandler) GetNewsByID(c *gin.Context) {
	newsID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news ID"})
		return
	}

	news, err := h.newsService.GetNewsByID(newsID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

// CreateNews creates an article
// POST /api/news
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Contents    string `json:"contents"`
		ImageURL    string `json:"image_url"`
		FileName    string `json:"file_name"`
		FileType    string `json:"file_type"`
		IsPublished *bool  `json:"is_published"`
		Author      string `json:"author"`
		Summary     string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	news := &models.News{
		Title:       req.Title,
		Contents:    req.Contents,
		ImageURL:    req.ImageURL,
		FileName:    req.FileName,
		FileType:    req.FileType,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
		Author:      req.Author,
		Summary:     req.Summary,
	}
	if err := h.newsService.CreateNews(news); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, news)
}

// UpdateNews applies a partial update
// PUT /api/news/:id
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	newsID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news ID"})
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Contents    *string `json:"contents"`
		ImageURL    *string `json:"image_url"`
		FileName    *string `json:"file_name"`
		FileType    *string `json:"file_type"`
		IsPublished *bool   `json:"is_published"`
		Author      *string `json:"author"`
		Summary     *string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	news, err := h.newsService.UpdateNews(newsID, services.NewsUpdate{
		Title:       req.Title,
		Contents:    req.Contents,
		ImageURL:    req.ImageURL,
		FileName:    req.FileName,
		FileType:    req.FileType,
		IsPublished: req.IsPublished,
		Author:      req.Author,
		Summary:     req.Summary,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

// DeleteNews removes an article
// DELETE /api/news/:id
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	newsID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news ID"})
		return
	}

	if err := h.newsService.DeleteNews(newsID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully", "news_id": newsID})
}
