package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryRepository 用户内容 Repository 接口
type EntryRepository interface {
	GetByID(id uuid.UUID) (*model.UserEntry, error)
	GetBySectionID(sectionID uuid.UUID) (*model.UserEntry, error)
	Upsert(entry *model.UserEntry) (*model.UserEntry, error)
	Update(entry *model.UserEntry) error
	ListFavorites() ([]model.FavoriteEntry, error)
}

// entryRepository 实现
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository 创建 Repository 实例
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

// GetByID 根据ID获取用户内容
func (r *entryRepository) GetByID(id uuid.UUID) (*model.UserEntry, error) {
	var entry model.UserEntry
	result := r.db.Where("id = ?", id).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

// GetBySectionID 获取章节对应的用户内容
func (r *entryRepository) GetBySectionID(sectionID uuid.UUID) (*model.UserEntry, error) {
	var entry model.UserEntry
	result := r.db.Where("section_id = ?", sectionID).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

// Upsert 以 section_id 为冲突键的原子写入：
// 已存在则覆盖 content 并刷新 updated_at，否则插入新记录。
// 并发的相同请求由 section_id 唯一索引裁决，不会产生两条记录。
func (r *entryRepository) Upsert(entry *model.UserEntry) (*model.UserEntry, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, err
	}

	// 冲突分支下传入的主键与库中行不一致，按 section_id 回读规范行
	var saved model.UserEntry
	if err := r.db.Where("section_id = ?", entry.SectionID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update 更新用户内容
func (r *entryRepository) Update(entry *model.UserEntry) error {
	return r.db.Save(entry).Error
}

// ListFavorites 获取所有收藏内容，联表取所属章节标题
func (r *entryRepository) ListFavorites() ([]model.FavoriteEntry, error) {
	var favorites []model.FavoriteEntry
	result := r.db.Table("user_entries").
		Select("user_entries.*, template_sections.title AS section_title").
		Joins("JOIN template_sections ON template_sections.id = user_entries.section_id").
		Where("user_entries.is_favorite = ?", true).
		Order("user_entries.created_at ASC").
		Find(&favorites)
	return favorites, result.Error
}
