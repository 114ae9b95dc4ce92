package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 路线图模板 Repository 接口
type TemplateRepository interface {
	List(skip, limit int) ([]model.RoadmapTemplate, error)
	GetByID(id uuid.UUID) (*model.RoadmapTemplate, error)
	Create(template *model.RoadmapTemplate) error
	Update(template *model.RoadmapTemplate) error
	Delete(id uuid.UUID) error
}

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List 分页获取模板列表（不含章节详情）
func (r *templateRepository) List(skip, limit int) ([]model.RoadmapTemplate, error) {
	var templates []model.RoadmapTemplate
	result := r.db.Offset(skip).Limit(limit).Find(&templates)
	return templates, result.Error
}

// GetByID 根据ID获取模板
func (r *templateRepository) GetByID(id uuid.UUID) (*model.RoadmapTemplate, error) {
	var template model.RoadmapTemplate
	result := r.db.Where("id = ?", id).First(&template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// Create 创建模板
func (r *templateRepository) Create(template *model.RoadmapTemplate) error {
	return r.db.Create(template).Error
}

// Update 更新模板
func (r *templateRepository) Update(template *model.RoadmapTemplate) error {
	return r.db.Save(template).Error
}

// Delete 删除模板（级联删除章节和用户内容）
func (r *templateRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&model.RoadmapTemplate{}).Error
}
