package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"gorm.io/gorm"
)

// SectionRepository 模板章节 Repository 接口
type SectionRepository interface {
	GetByID(id uuid.UUID) (*model.TemplateSection, error)
	ListByTemplate(templateID uuid.UUID) ([]model.TemplateSection, error)
	Create(section *model.TemplateSection) error
	Update(section *model.TemplateSection) error
	Delete(id uuid.UUID) error
}

// sectionRepository 实现
type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository 创建 Repository 实例
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

// GetByID 根据ID获取章节（不含子章节）
func (r *sectionRepository) GetByID(id uuid.UUID) (*model.TemplateSection, error) {
	var section model.TemplateSection
	result := r.db.Where("id = ?", id).First(&section)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &section, nil
}

// ListByTemplate 获取模板下所有章节的平铺列表
// order_index 相同的按创建时间排序，保持插入顺序稳定
func (r *sectionRepository) ListByTemplate(templateID uuid.UUID) ([]model.TemplateSection, error) {
	var sections []model.TemplateSection
	result := r.db.Where("template_id = ?", templateID).
		Order("order_index ASC, created_at ASC").
		Find(&sections)
	return sections, result.Error
}

// Create 创建章节
func (r *sectionRepository) Create(section *model.TemplateSection) error {
	return r.db.Create(section).Error
}

// Update 更新章节
func (r *sectionRepository) Update(section *model.TemplateSection) error {
	return r.db.Save(section).Error
}

// Delete 删除章节（级联删除子章节和用户内容）
func (r *sectionRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&model.TemplateSection{}).Error
}
