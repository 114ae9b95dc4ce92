package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoadmapTemplate 路线图模板表
type RoadmapTemplate struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string            `json:"name" gorm:"size:255;not null;index"`
	Description *string           `json:"description" gorm:"type:text"`
	IsActive    bool              `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	Sections    []TemplateSection `json:"sections,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (RoadmapTemplate) TableName() string {
	return "roadmap_templates"
}

// BeforeCreate 写入前生成 UUID 主键
func (t *RoadmapTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
