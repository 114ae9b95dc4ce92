package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/nexuspath/backend/internal/model"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.RoadmapTemplate{}, &model.TemplateSection{}, &model.UserEntry{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func strPtr(s string) *string {
	return &s
}

func TestTemplateRepositoryCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewTemplateRepository(db)

	template := &model.RoadmapTemplate{
		Name:        "后端学习路线",
		Description: strPtr("从零开始"),
		IsActive:    true,
	}
	if err := repo.Create(template); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if template.ID == uuid.Nil {
		t.Fatalf("expected generated uuid, got nil uuid")
	}

	got, err := repo.GetByID(template.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Name != "后端学习路线" || !got.IsActive {
		t.Fatalf("unexpected template: %+v", got)
	}

	if _, err := repo.GetByID(uuid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTemplateRepositoryListPagination(t *testing.T) {
	db := openTestDB(t)
	repo := NewTemplateRepository(db)

	for i := 0; i < 5; i++ {
		if err := repo.Create(&model.RoadmapTemplate{Name: "模板", IsActive: true}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	page, err := repo.List(0, 3)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(page))
	}

	rest, err := repo.List(3, 100)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(rest))
	}
	if rest[0].ID == page[0].ID {
		t.Fatalf("expected skip to advance past first page")
	}
}

func TestTemplateRepositoryDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	templateRepo := NewTemplateRepository(db)
	sectionRepo := NewSectionRepository(db)
	entryRepo := NewEntryRepository(db)

	template := &model.RoadmapTemplate{Name: "级联模板", IsActive: true}
	if err := templateRepo.Create(template); err != nil {
		t.Fatalf("create template error: %v", err)
	}

	root := &model.TemplateSection{TemplateID: template.ID, Title: "根章节", OrderIndex: 0}
	if err := sectionRepo.Create(root); err != nil {
		t.Fatalf("create root section error: %v", err)
	}
	child := &model.TemplateSection{TemplateID: template.ID, ParentID: &root.ID, Title: "子章节", OrderIndex: 1}
	if err := sectionRepo.Create(child); err != nil {
		t.Fatalf("create child section error: %v", err)
	}
	if _, err := entryRepo.Upsert(&model.UserEntry{SectionID: child.ID}); err != nil {
		t.Fatalf("upsert entry error: %v", err)
	}

	if err := templateRepo.Delete(template.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if _, err := templateRepo.GetByID(template.ID); err != ErrNotFound {
		t.Fatalf("expected template gone, got %v", err)
	}
	if _, err := sectionRepo.GetByID(root.ID); err != ErrNotFound {
		t.Fatalf("expected root section gone, got %v", err)
	}
	if _, err := sectionRepo.GetByID(child.ID); err != ErrNotFound {
		t.Fatalf("expected child section gone, got %v", err)
	}
	if _, err := entryRepo.GetBySectionID(child.ID); err != ErrNotFound {
		t.Fatalf("expected entry gone, got %v", err)
	}
}
