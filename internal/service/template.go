package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"github.com/nexuspath/backend/internal/repository"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
)

// TemplateDTO 模板数据传输对象
type TemplateDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TemplateDetailDTO 模板详情（含嵌套章节树）
type TemplateDetailDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Sections    []SectionDTO `json:"sections"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
}

// UpdateTemplateRequest 更新模板请求，仅应用出现的字段
type UpdateTemplateRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description Optional[string] `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

// TemplateService 模板服务接口
type TemplateService interface {
	List(ctx context.Context, skip, limit int) ([]*TemplateDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TemplateDetailDTO, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*TemplateDTO, error)
}

// templateService 实现
type templateService struct {
	templateRepo repository.TemplateRepository
	sectionRepo  repository.SectionRepository
}

// NewTemplateService 创建服务实例
func NewTemplateService(templateRepo repository.TemplateRepository, sectionRepo repository.SectionRepository) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		sectionRepo:  sectionRepo,
	}
}

// List 分页获取模板列表
func (s *templateService) List(ctx context.Context, skip, limit int) ([]*TemplateDTO, error) {
	templates, err := s.templateRepo.List(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]*TemplateDTO, len(templates))
	for i, t := range templates {
		result[i] = toTemplateDTO(&t)
	}
	return result, nil
}

// GetByID 获取模板详情，章节按 parent_id 组装成嵌套树
func (s *templateService) GetByID(ctx context.Context, id uuid.UUID) (*TemplateDetailDTO, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	sections, err := s.sectionRepo.ListByTemplate(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	return &TemplateDetailDTO{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		IsActive:    template.IsActive,
		CreatedAt:   template.CreatedAt,
		UpdatedAt:   template.UpdatedAt,
		Sections:    buildSectionTree(sections),
	}, nil
}

// Create 创建模板，active 默认开启，名称不要求唯一
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDTO, error) {
	template := &model.RoadmapTemplate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return toTemplateDTO(template), nil
}

// Update 部分更新模板
func (s *templateService) Update(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateDTO, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description.Set {
		template.Description = req.Description.Value
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return toTemplateDTO(template), nil
}

// Delete 删除模板并级联删除其章节和用户内容，返回删除前快照
func (s *templateService) Delete(ctx context.Context, id uuid.UUID) (*TemplateDTO, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.templateRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete template: %w", err)
	}

	return toTemplateDTO(template), nil
}

// toTemplateDTO 转换为 DTO
func toTemplateDTO(t *model.RoadmapTemplate) *TemplateDTO {
	return &TemplateDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
