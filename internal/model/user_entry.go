package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserEntry 用户内容表（每个章节最多一条）
type UserEntry struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	SectionID  uuid.UUID      `json:"section_id" gorm:"type:uuid;not null;uniqueIndex"`
	Content    datatypes.JSON `json:"content" gorm:"type:json"`
	IsFavorite bool           `json:"is_favorite" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (UserEntry) TableName() string {
	return "user_entries"
}

// BeforeCreate 写入前生成 UUID 主键
func (e *UserEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// FavoriteEntry 收藏条目，附所属章节标题
type FavoriteEntry struct {
	UserEntry    `gorm:"embedded"`
	SectionTitle string `json:"section_title" gorm:"column:section_title"`
}
