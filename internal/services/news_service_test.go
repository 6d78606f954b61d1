package services

import (
	"testing"

	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/pkg/errs"
)

func createTestNews(t *testing.T, svc *NewsService, title string, published bool) *models.News {
	news := &models.News{Title: title, IsPublished: published}
	if err := svc.CreateNews(news); err != nil {
		t.Fatalf("Failed to create test news: %v", err)
	}
	if !published {
		// the column default would flip it back on create
		hide := false
		updated, err := svc.UpdateNews(news.ID, NewsUpdate{IsPublished: &hide})
		if err != nil {
			t.Fatalf("Failed to unpublish test news: %v", err)
		}
		return updated
	}
	return news
}

func TestCreateNewsRequiresTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNewsService(db)

	err := svc.CreateNews(&models.News{Contents: "no headline"})
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestGetPublishedNewsFiltersDrafts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNewsService(db)

	createTestNews(t, svc, "Open House", true)
	createTestNews(t, svc, "Draft Notes", false)

	published, err := svc.GetPublishedNews()
	if err != nil {
		t.Fatalf("GetPublishedNews failed: %v", err)
	}
	if len(published) != 1 || published[0].Title != "Open House" {
		t.Errorf("Expected only the published article, got %v", published)
	}

	all, err := svc.GetAllNews()
	if err != nil {
		t.Fatalf("GetAllNews failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected both articles in the admin listing, got %d", len(all))
	}
}

func TestGetPublishedNewsPage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNewsService(db)

	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		createTestNews(t, svc, title, true)
	}
	createTestNews(t, svc, "Hidden", false)

	page, total, err := svc.GetPublishedNewsPage(2, 2)
	if err != nil {
		t.Fatalf("GetPublishedNewsPage failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Errorf("Expected page of 2, got %d", len(page))
	}
}

func TestSearchNewsByTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNewsService(db)

	createTestNews(t, svc, "Award Ceremony 2026", true)
	createTestNews(t, svc, "Office Relocation", true)
	createTestNews(t, svc, "Award Shortlist", false)

	found, err := svc.SearchNewsByTitle("Award")
	if err != nil {
		t.Fatalf("SearchNewsByTitle failed: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Award Ceremony 2026" {
		t.Errorf("Expected only the published match, got %v", found)
	}
}

func TestUpdateNewsPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNewsService(db)

	news := createTestNews(t, svc, "Before", true)
	title := "After"
	updated, err := svc.UpdateNews(news.ID, NewsUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateNews failed: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("Title not applied: %s", updated.Title)
	}
	if updated.IsPublished != true {
		t.Error("Untouched publication flag changed")
	}
}

func TestDeleteNews(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNewsService(db)

	news := createTestNews(t, svc, "Transient", true)
	if err := svc.DeleteNews(news.ID); err != nil {
		t.Fatalf("DeleteNews failed: %v", err)
	}
	if _, err := svc.GetNewsByID(news.ID); !errs.IsNotFound(err) {
		t.Errorf("Expected not-found after delete, got %v", err)
	}
	if err := svc.DeleteNews(news.ID); !errs.IsNotFound(err) {
		t.Errorf("Expected not-found on double delete, got %v", err)
	}
}
