package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"github.com/nexuspath/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServices(t *testing.T) (TemplateService, SectionService, EntryService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RoadmapTemplate{}, &model.TemplateSection{}, &model.UserEntry{}))

	templateRepo := repository.NewTemplateRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	return NewTemplateService(templateRepo, sectionRepo),
		NewSectionService(sectionRepo, templateRepo),
		NewEntryService(entryRepo, sectionRepo)
}

func TestSectionServiceTreeAssembly(t *testing.T) {
	ctx := context.Background()
	templateSvc, sectionSvc, _ := setupServices(t)

	template, err := templateSvc.Create(ctx, CreateTemplateRequest{Name: "Backend Track"})
	require.NoError(t, err)

	root, err := sectionSvc.Create(ctx, CreateSectionRequest{
		TemplateID: template.ID,
		Title:      "Intro",
		OrderIndex: 0,
	})
	require.NoError(t, err)

	child, err := sectionSvc.Create(ctx, CreateSectionRequest{
		TemplateID: template.ID,
		Title:      "Setup",
		OrderIndex: 0,
		ParentID:   &root.ID,
	})
	require.NoError(t, err)

	grandchild, err := sectionSvc.Create(ctx, CreateSectionRequest{
		TemplateID: template.ID,
		Title:      "Install Go",
		OrderIndex: 0,
		ParentID:   &child.ID,
	})
	require.NoError(t, err)

	// 平铺列表不做嵌套
	flat, err := sectionSvc.ListByTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.Len(t, flat, 3)
	for _, sec := range flat {
		assert.Empty(t, sec.Children)
	}

	// 模板详情返回完整嵌套树
	detail, err := templateSvc.GetByID(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 1)
	require.Len(t, detail.Sections[0].Children, 1)
	assert.Equal(t, child.ID, detail.Sections[0].Children[0].ID)
	require.Len(t, detail.Sections[0].Children[0].Children, 1)
	assert.Equal(t, grandchild.ID, detail.Sections[0].Children[0].Children[0].ID)

	// 单章节读取返回以其为根的子树
	node, err := sectionSvc.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	assert.Equal(t, grandchild.ID, node.Children[0].ID)
}

func TestSectionServiceParentValidation(t *testing.T) {
	ctx := context.Background()
	templateSvc, sectionSvc, _ := setupServices(t)

	first, err := templateSvc.Create(ctx, CreateTemplateRequest{Name: "甲"})
	require.NoError(t, err)
	second, err := templateSvc.Create(ctx, CreateTemplateRequest{Name: "乙"})
	require.NoError(t, err)

	foreign, err := sectionSvc.Create(ctx, CreateSectionRequest{TemplateID: second.ID, Title: "别家章节"})
	require.NoError(t, err)

	// 父章节属于另一个模板
	_, err = sectionSvc.Create(ctx, CreateSectionRequest{
		TemplateID: first.ID,
		Title:      "跨模板",
		ParentID:   &foreign.ID,
	})
	assert.ErrorIs(t, err, ErrParentSectionInvalid)

	a, err := sectionSvc.Create(ctx, CreateSectionRequest{TemplateID: first.ID, Title: "A"})
	require.NoError(t, err)
	b, err := sectionSvc.Create(ctx, CreateSectionRequest{TemplateID: first.ID, Title: "B", ParentID: &a.ID})
	require.NoError(t, err)

	// 自引用
	_, err = sectionSvc.Update(ctx, a.ID, UpdateSectionRequest{
		ParentID: Optional[uuid.UUID]{Set: true, Value: &a.ID},
	})
	assert.ErrorIs(t, err, ErrParentSectionInvalid)

	// 成环：把 A 挂到自己的后代 B 之下
	_, err = sectionSvc.Update(ctx, a.ID, UpdateSectionRequest{
		ParentID: Optional[uuid.UUID]{Set: true, Value: &b.ID},
	})
	assert.ErrorIs(t, err, ErrParentSectionInvalid)
}

func TestSectionServicePartialUpdate(t *testing.T) {
	ctx := context.Background()
	templateSvc, sectionSvc, _ := setupServices(t)

	template, err := templateSvc.Create(ctx, CreateTemplateRequest{Name: "模板"})
	require.NoError(t, err)

	prompt := "写下你的计划"
	section, err := sectionSvc.Create(ctx, CreateSectionRequest{
		TemplateID: template.ID,
		Title:      "原标题",
		Prompt:     &prompt,
		OrderIndex: 3,
	})
	require.NoError(t, err)

	// 空载荷不改任何字段
	unchanged, err := sectionSvc.Update(ctx, section.ID, UpdateSectionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "原标题", unchanged.Title)
	require.NotNil(t, unchanged.Prompt)
	assert.Equal(t, prompt, *unchanged.Prompt)
	assert.Equal(t, 3, unchanged.OrderIndex)

	// 只改标题
	title := "新标题"
	updated, err := sectionSvc.Update(ctx, section.ID, UpdateSectionRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "新标题", updated.Title)
	require.NotNil(t, updated.Prompt)

	// 显式置空 prompt
	cleared, err := sectionSvc.Update(ctx, section.ID, UpdateSectionRequest{
		Prompt: Optional[string]{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Prompt)
	assert.Equal(t, "新标题", cleared.Title)
}
