package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/service"
)

// SectionHandler 模板章节 Handler
type SectionHandler struct {
	sectionService service.SectionService
}

// NewSectionHandler 创建 Handler
func NewSectionHandler(sectionService service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// Get 获取章节详情（含子树）
func (h *SectionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	section, err := h.sectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrSectionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, section)
}

// Update 部分更新章节
func (h *SectionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), id, req)
	if err != nil {
		if err == service.ErrSectionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		if err == service.ErrParentSectionInvalid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent section invalid"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, section)
}

// Delete 删除章节（级联子树和用户内容），返回删除前快照
func (h *SectionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	section, err := h.sectionService.Delete(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrSectionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, section)
}
