package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"github.com/nexuspath/backend/internal/repository"
	"gorm.io/datatypes"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryDTO 用户内容数据传输对象
type EntryDTO struct {
	ID         uuid.UUID      `json:"id"`
	SectionID  uuid.UUID      `json:"section_id"`
	Content    datatypes.JSON `json:"content"`
	IsFavorite bool           `json:"is_favorite"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// FavoriteEntryDTO 收藏内容，附所属章节标题
type FavoriteEntryDTO struct {
	EntryDTO
	SectionTitle string `json:"section_title"`
}

// UpsertEntryRequest 写入用户内容请求，content 为任意 JSON 结构
type UpsertEntryRequest struct {
	Content datatypes.JSON `json:"content"`
}

// UpdateFavoriteRequest 更新收藏标记请求
type UpdateFavoriteRequest struct {
	IsFavorite *bool `json:"is_favorite" binding:"required"`
}

// EntryService 用户内容服务接口
type EntryService interface {
	GetForSection(ctx context.Context, sectionID uuid.UUID) (*EntryDTO, error)
	Upsert(ctx context.Context, sectionID uuid.UUID, req UpsertEntryRequest) (*EntryDTO, error)
	SetFavorite(ctx context.Context, entryID uuid.UUID, isFavorite bool) (*EntryDTO, error)
	ListFavorites(ctx context.Context) ([]*FavoriteEntryDTO, error)
}

// entryService 实现
type entryService struct {
	entryRepo   repository.EntryRepository
	sectionRepo repository.SectionRepository
}

// NewEntryService 创建服务实例
func NewEntryService(entryRepo repository.EntryRepository, sectionRepo repository.SectionRepository) EntryService {
	return &entryService{
		entryRepo:   entryRepo,
		sectionRepo: sectionRepo,
	}
}

// GetForSection 获取章节对应的用户内容
func (s *entryService) GetForSection(ctx context.Context, sectionID uuid.UUID) (*EntryDTO, error) {
	entry, err := s.entryRepo.GetBySectionID(sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return toEntryDTO(entry), nil
}

// Upsert 写入章节的用户内容：不存在则创建，存在则覆盖 content。
// 同一动作不论此前是否有数据行为一致。
func (s *entryService) Upsert(ctx context.Context, sectionID uuid.UUID, req UpsertEntryRequest) (*EntryDTO, error) {
	_, err := s.sectionRepo.GetByID(sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	entry := &model.UserEntry{
		SectionID: sectionID,
		Content:   req.Content,
	}

	saved, err := s.entryRepo.Upsert(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert entry: %w", err)
	}
	return toEntryDTO(saved), nil
}

// SetFavorite 更新收藏标记
func (s *entryService) SetFavorite(ctx context.Context, entryID uuid.UUID, isFavorite bool) (*EntryDTO, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	entry.IsFavorite = isFavorite
	if err := s.entryRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return toEntryDTO(entry), nil
}

// ListFavorites 获取所有收藏内容
func (s *entryService) ListFavorites(ctx context.Context) ([]*FavoriteEntryDTO, error) {
	favorites, err := s.entryRepo.ListFavorites()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	result := make([]*FavoriteEntryDTO, len(favorites))
	for i, f := range favorites {
		result[i] = &FavoriteEntryDTO{
			EntryDTO:     *toEntryDTO(&f.UserEntry),
			SectionTitle: f.SectionTitle,
		}
	}
	return result, nil
}

// toEntryDTO 转换为 DTO
func toEntryDTO(e *model.UserEntry) *EntryDTO {
	return &EntryDTO{
		ID:         e.ID,
		SectionID:  e.SectionID,
		Content:    e.Content,
		IsFavorite: e.IsFavorite,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
