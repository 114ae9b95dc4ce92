package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateSection 模板章节表（同一模板内的父指针树）
type TemplateSection struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	TemplateID uuid.UUID         `json:"template_id" gorm:"type:uuid;not null;index"`
	ParentID   *uuid.UUID        `json:"parent_id" gorm:"type:uuid;index"` // null 表示根章节
	Title      string            `json:"title" gorm:"size:255;not null"`
	Prompt     *string           `json:"prompt" gorm:"type:text"`
	OrderIndex int               `json:"order_index" gorm:"not null;default:0"`
	CreatedAt  time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	Children   []TemplateSection `json:"children,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
	Entry      *UserEntry        `json:"entry,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (TemplateSection) TableName() string {
	return "template_sections"
}

// BeforeCreate 写入前生成 UUID 主键
func (s *TemplateSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
