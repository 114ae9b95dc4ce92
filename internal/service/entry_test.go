package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEntryServiceUpsertLifecycle(t *testing.T) {
	ctx := context.Background()
	templateSvc, sectionSvc, entrySvc := setupServices(t)

	template, err := templateSvc.Create(ctx, CreateTemplateRequest{Name: "Backend Track"})
	require.NoError(t, err)
	section, err := sectionSvc.Create(ctx, CreateSectionRequest{TemplateID: template.ID, Title: "Intro"})
	require.NoError(t, err)

	// 写入前读取报不存在
	_, err = entrySvc.GetForSection(ctx, section.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	created, err := entrySvc.Upsert(ctx, section.ID, UpsertEntryRequest{
		Content: datatypes.JSON(`{"notes":"start here"}`),
	})
	require.NoError(t, err)
	assert.False(t, created.IsFavorite)
	assert.Equal(t, section.ID, created.SectionID)

	// 再次写入覆盖内容，主键不变
	replaced, err := entrySvc.Upsert(ctx, section.ID, UpsertEntryRequest{
		Content: datatypes.JSON(`{"notes":"revised"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.JSONEq(t, `{"notes":"revised"}`, string(replaced.Content))
	assert.False(t, replaced.UpdatedAt.Before(replaced.CreatedAt))

	got, err := entrySvc.GetForSection(ctx, section.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":"revised"}`, string(got.Content))
}

func TestEntryServiceUpsertUnknownSection(t *testing.T) {
	ctx := context.Background()
	_, _, entrySvc := setupServices(t)

	_, err := entrySvc.Upsert(ctx, uuid.New(), UpsertEntryRequest{})
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestEntryServiceFavorites(t *testing.T) {
	ctx := context.Background()
	templateSvc, sectionSvc, entrySvc := setupServices(t)

	template, err := templateSvc.Create(ctx, CreateTemplateRequest{Name: "Backend Track"})
	require.NoError(t, err)
	intro, err := sectionSvc.Create(ctx, CreateSectionRequest{TemplateID: template.ID, Title: "Intro"})
	require.NoError(t, err)
	other, err := sectionSvc.Create(ctx, CreateSectionRequest{TemplateID: template.ID, Title: "Other", OrderIndex: 1})
	require.NoError(t, err)

	entry, err := entrySvc.Upsert(ctx, intro.ID, UpsertEntryRequest{Content: datatypes.JSON(`{"a":1}`)})
	require.NoError(t, err)
	_, err = entrySvc.Upsert(ctx, other.ID, UpsertEntryRequest{Content: datatypes.JSON(`{"b":2}`)})
	require.NoError(t, err)

	favored, err := entrySvc.SetFavorite(ctx, entry.ID, true)
	require.NoError(t, err)
	assert.True(t, favored.IsFavorite)

	favorites, err := entrySvc.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, entry.ID, favorites[0].ID)
	assert.Equal(t, "Intro", favorites[0].SectionTitle)

	// 取消收藏后列表为空
	_, err = entrySvc.SetFavorite(ctx, entry.ID, false)
	require.NoError(t, err)
	favorites, err = entrySvc.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	_, err = entrySvc.SetFavorite(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
