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
	ErrSectionNotFound      = errors.New("section not found")
	ErrParentSectionInvalid = errors.New("parent section invalid")
)

// SectionDTO 章节数据传输对象。
// 平铺列表中 children 为空数组，仅在树状视图中填充。
type SectionDTO struct {
	ID         uuid.UUID    `json:"id"`
	TemplateID uuid.UUID    `json:"template_id"`
	ParentID   *uuid.UUID   `json:"parent_id"`
	Title      string       `json:"title"`
	Prompt     *string      `json:"prompt"`
	OrderIndex int          `json:"order_index"`
	Children   []SectionDTO `json:"children"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// CreateSectionRequest 创建章节请求
type CreateSectionRequest struct {
	TemplateID uuid.UUID  `json:"-"` // 从 URL 参数获取，不接收 JSON
	Title      string     `json:"title" binding:"required,min=1,max=255"`
	Prompt     *string    `json:"prompt"`
	OrderIndex int        `json:"order_index"`
	ParentID   *uuid.UUID `json:"parent_id"`
}

// UpdateSectionRequest 更新章节请求，仅应用出现的字段
type UpdateSectionRequest struct {
	Title      *string             `json:"title" binding:"omitempty,min=1,max=255"`
	Prompt     Optional[string]    `json:"prompt"`
	OrderIndex *int                `json:"order_index"`
	ParentID   Optional[uuid.UUID] `json:"parent_id"`
}

// SectionService 章节服务接口
type SectionService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SectionDTO, error)
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*SectionDTO, error)
	Create(ctx context.Context, req CreateSectionRequest) (*SectionDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateSectionRequest) (*SectionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*SectionDTO, error)
}

// sectionService 实现
type sectionService struct {
	sectionRepo  repository.SectionRepository
	templateRepo repository.TemplateRepository
}

// NewSectionService 创建服务实例
func NewSectionService(sectionRepo repository.SectionRepository, templateRepo repository.TemplateRepository) SectionService {
	return &sectionService{
		sectionRepo:  sectionRepo,
		templateRepo: templateRepo,
	}
}

// GetByID 获取章节详情，含以该章节为根的子树
func (s *sectionService) GetByID(ctx context.Context, id uuid.UUID) (*SectionDTO, error) {
	section, err := s.sectionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	sections, err := s.sectionRepo.ListByTemplate(section.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	node := findSectionNode(buildSectionTree(sections), id)
	if node == nil {
		// 列表与单条读取之间章节被并发删除
		return nil, ErrSectionNotFound
	}
	return node, nil
}

// ListByTemplate 获取模板下章节的平铺列表，按 order_index 升序
func (s *sectionService) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*SectionDTO, error) {
	sections, err := s.sectionRepo.ListByTemplate(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	result := make([]*SectionDTO, len(sections))
	for i, sec := range sections {
		result[i] = toSectionDTO(&sec)
	}
	return result, nil
}

// Create 在指定模板下创建章节
func (s *sectionService) Create(ctx context.Context, req CreateSectionRequest) (*SectionDTO, error) {
	_, err := s.templateRepo.GetByID(req.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if req.ParentID != nil {
		if err := s.checkParent(req.TemplateID, uuid.Nil, *req.ParentID); err != nil {
			return nil, err
		}
	}

	section := &model.TemplateSection{
		TemplateID: req.TemplateID,
		ParentID:   req.ParentID,
		Title:      req.Title,
		Prompt:     req.Prompt,
		OrderIndex: req.OrderIndex,
	}

	if err := s.sectionRepo.Create(section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	return toSectionDTO(section), nil
}

// Update 部分更新章节
func (s *sectionService) Update(ctx context.Context, id uuid.UUID, req UpdateSectionRequest) (*SectionDTO, error) {
	section, err := s.sectionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Prompt.Set {
		section.Prompt = req.Prompt.Value
	}
	if req.OrderIndex != nil {
		section.OrderIndex = *req.OrderIndex
	}
	if req.ParentID.Set {
		if req.ParentID.Value != nil {
			if err := s.checkParent(section.TemplateID, section.ID, *req.ParentID.Value); err != nil {
				return nil, err
			}
		}
		section.ParentID = req.ParentID.Value
	}

	if err := s.sectionRepo.Update(section); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}

	return toSectionDTO(section), nil
}

// Delete 删除章节并级联删除其子树和用户内容，返回删除前快照
func (s *sectionService) Delete(ctx context.Context, id uuid.UUID) (*SectionDTO, error) {
	section, err := s.sectionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	if err := s.sectionRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete section: %w", err)
	}

	return toSectionDTO(section), nil
}

// checkParent 校验父章节：必须存在、属于同一模板，且不能形成环。
// selfID 为 uuid.Nil 时表示创建场景，无需环检测。
func (s *sectionService) checkParent(templateID, selfID, parentID uuid.UUID) error {
	if parentID == selfID {
		return ErrParentSectionInvalid
	}

	parent, err := s.sectionRepo.GetByID(parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrParentSectionInvalid
		}
		return fmt.Errorf("failed to get parent section: %w", err)
	}
	if parent.TemplateID != templateID {
		return ErrParentSectionInvalid
	}

	if selfID == uuid.Nil {
		return nil
	}

	// 沿父指针上溯，拒绝把章节挂到自己的后代之下
	for cur := parent; cur.ParentID != nil; {
		if *cur.ParentID == selfID {
			return ErrParentSectionInvalid
		}
		cur, err = s.sectionRepo.GetByID(*cur.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk section ancestors: %w", err)
		}
	}
	return nil
}

// toSectionDTO 转换为 DTO，children 为空数组
func toSectionDTO(sec *model.TemplateSection) *SectionDTO {
	return &SectionDTO{
		ID:         sec.ID,
		TemplateID: sec.TemplateID,
		ParentID:   sec.ParentID,
		Title:      sec.Title,
		Prompt:     sec.Prompt,
		OrderIndex: sec.OrderIndex,
		Children:   []SectionDTO{},
		CreatedAt:  sec.CreatedAt,
		UpdatedAt:  sec.UpdatedAt,
	}
}

// buildSectionTree 把平铺章节列表按 parent_id 组装成嵌套树。
// 输入已按 order_index 排序，children 保持该顺序；父节点不在列表中的
// 章节按根处理，避免悬挂引用丢数据。
func buildSectionTree(sections []model.TemplateSection) []SectionDTO {
	nodes := make(map[uuid.UUID]*model.TemplateSection, len(sections))
	for i := range sections {
		nodes[sections[i].ID] = &sections[i]
	}

	childIDs := make(map[uuid.UUID][]uuid.UUID, len(sections))
	var rootIDs []uuid.UUID
	for i := range sections {
		sec := &sections[i]
		if sec.ParentID != nil {
			if _, ok := nodes[*sec.ParentID]; ok {
				childIDs[*sec.ParentID] = append(childIDs[*sec.ParentID], sec.ID)
				continue
			}
		}
		rootIDs = append(rootIDs, sec.ID)
	}

	visited := make(map[uuid.UUID]bool, len(sections))
	var materialize func(id uuid.UUID) SectionDTO
	materialize = func(id uuid.UUID) SectionDTO {
		visited[id] = true
		node := *toSectionDTO(nodes[id])
		for _, cid := range childIDs[id] {
			if visited[cid] {
				continue
			}
			node.Children = append(node.Children, materialize(cid))
		}
		return node
	}

	roots := make([]SectionDTO, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, materialize(id))
	}
	return roots
}

// findSectionNode 在树中按ID查找节点
func findSectionNode(nodes []SectionDTO, id uuid.UUID) *SectionDTO {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if found := findSectionNode(nodes[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}
