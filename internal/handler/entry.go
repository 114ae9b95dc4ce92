package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/service"
)

// EntryHandler 用户内容 Handler
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler 创建 Handler
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// GetForSection 获取章节对应的用户内容
func (h *EntryHandler) GetForSection(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}

	entry, err := h.entryService.GetForSection(c.Request.Context(), sectionID)
	if err != nil {
		if err == service.ErrEntryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found for this section"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Upsert 写入章节的用户内容（创建或覆盖）
func (h *EntryHandler) Upsert(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}

	var req service.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.Upsert(c.Request.Context(), sectionID, req)
	if err != nil {
		if err == service.ErrSectionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateFavorite 更新收藏标记
func (h *EntryHandler) UpdateFavorite(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req service.UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.SetFavorite(c.Request.Context(), entryID, *req.IsFavorite)
	if err != nil {
		if err == service.ErrEntryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListFavorites 获取所有收藏内容（附章节标题）
func (h *EntryHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.entryService.ListFavorites(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, favorites)
}
