package store

import (
	"testing"

	"github.com/google/uuid"

	"layoutberg/internal/models"
)

func TestTemplateCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewTemplateStore(db)
	userID := "test-tpl-create"
	t.Cleanup(func() { cleanUser(t, db, userID) })

	created, err := s.Create(&models.Template{
		Name:      "Hero Starter",
		Slug:      "test-tpl-create-hero",
		Content:   "<!-- wp:cover /-->",
		Category:  "hero",
		Tags:      []string{"hero", "landing"},
		Prompt:    "a hero section",
		IsPublic:  false,
		CreatedBy: userID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("id not generated")
	}
	if len(created.Tags) != 2 || created.Tags[0] != "hero" {
		t.Errorf("tags: got %v", created.Tags)
	}

	bySlug, err := s.FindBySlug("test-tpl-create-hero")
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Errorf("by slug: got %+v", bySlug)
	}
}

func TestTemplateSlugUnique(t *testing.T) {
	db := testDB(t)
	s := NewTemplateStore(db)
	userID := "test-tpl-unique"
	t.Cleanup(func() { cleanUser(t, db, userID) })

	tpl := &models.Template{
		Name: "Dup", Slug: "test-tpl-unique-dup", Content: "x", CreatedBy: userID,
	}
	if _, err := s.Create(tpl); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(tpl); err == nil {
		t.Error("duplicate slug should fail")
	}
}

func TestTemplateListVisible(t *testing.T) {
	db := testDB(t)
	s := NewTemplateStore(db)
	owner := "test-tpl-vis-owner"
	other := "test-tpl-vis-other"
	t.Cleanup(func() {
		cleanUser(t, db, owner)
		cleanUser(t, db, other)
	})

	mustCreate := func(tpl *models.Template) {
		t.Helper()
		if _, err := s.Create(tpl); err != nil {
			t.Fatalf("create %s: %v", tpl.Slug, err)
		}
	}
	mustCreate(&models.Template{Name: "own private", Slug: "test-tpl-vis-a", Content: "x", CreatedBy: owner})
	mustCreate(&models.Template{Name: "other public", Slug: "test-tpl-vis-b", Content: "x", IsPublic: true, CreatedBy: other})
	mustCreate(&models.Template{Name: "other private", Slug: "test-tpl-vis-c", Content: "x", CreatedBy: other})

	items, err := s.ListVisible(owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	seen := make(map[string]bool)
	for _, tpl := range items {
		seen[tpl.Slug] = true
	}
	if !seen["test-tpl-vis-a"] || !seen["test-tpl-vis-b"] {
		t.Errorf("own and public templates missing: %v", seen)
	}
	if seen["test-tpl-vis-c"] {
		t.Error("another user's private template is visible")
	}
}

func TestTemplateUpdateAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewTemplateStore(db)
	userID := "test-tpl-upd"
	t.Cleanup(func() { cleanUser(t, db, userID) })

	created, err := s.Create(&models.Template{
		Name: "Before", Slug: "test-tpl-upd-x", Content: "old", CreatedBy: userID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Name = "After"
	created.Content = "new"
	created.IsPublic = true
	if err := s.Update(created); err != nil {
		t.Fatalf("update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "After" || found.Content != "new" || !found.IsPublic {
		t.Errorf("update not persisted: %+v", found)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("deleted template still found: %+v", gone)
	}
}

func TestTemplateIncrementUsage(t *testing.T) {
	db := testDB(t)
	s := NewTemplateStore(db)
	userID := "test-tpl-usage"
	t.Cleanup(func() { cleanUser(t, db, userID) })

	created, err := s.Create(&models.Template{
		Name: "Counted", Slug: "test-tpl-usage-x", Content: "x", CreatedBy: userID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.IncrementUsage(created.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := s.IncrementUsage(created.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UsageCount != 2 {
		t.Errorf("usage count: got %d, want 2", found.UsageCount)
	}
}
