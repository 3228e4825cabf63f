package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAnalyticsServiceTest(t *testing.T) (*AnalyticsService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:analytics_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AnalyticsEvent{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAnalyticsService(repository.NewAnalyticsRepository(db)), db
}

func TestAnalyticsTrack(t *testing.T) {
	svc, db := setupAnalyticsServiceTest(t)

	if _, err := svc.Track(AnalyticsTrackInput{EventType: "  "}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for empty event type, got %v", err)
	}

	event, err := svc.Track(AnalyticsTrackInput{
		EventType: " page_view ",
		PageURL:   "/products/1",
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
		EventData: models.JSON(map[string]interface{}{"ref": "newsletter"}),
	})
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if event.EventType != "page_view" {
		t.Fatalf("expected trimmed event type, got %q", event.EventType)
	}

	var count int64
	if err := db.Model(&models.AnalyticsEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count events failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored event, got %d", count)
	}
}

func TestAnalyticsSummary(t *testing.T) {
	svc, _ := setupAnalyticsServiceTest(t)

	seeds := []AnalyticsTrackInput{
		{EventType: "page_view", PageURL: "/", IPAddress: "10.0.0.1"},
		{EventType: "page_view", PageURL: "/", IPAddress: "10.0.0.2"},
		{EventType: "page_view", PageURL: "/products/1", IPAddress: "10.0.0.1"},
		{EventType: "add_to_cart", PageURL: "/products/1", IPAddress: "10.0.0.1"},
	}
	for _, seed := range seeds {
		if _, err := svc.Track(seed); err != nil {
			t.Fatalf("seed track failed: %v", err)
		}
	}

	summary, err := svc.Summary(0)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.PeriodDays != 30 {
		t.Fatalf("expected default period 30, got %d", summary.PeriodDays)
	}
	if summary.TotalEvents != 4 {
		t.Fatalf("expected 4 total events, got %d", summary.TotalEvents)
	}
	if summary.PageViews != 3 {
		t.Fatalf("expected 3 page views, got %d", summary.PageViews)
	}
	if summary.UniqueVisitors != 2 {
		t.Fatalf("expected 2 unique visitors, got %d", summary.UniqueVisitors)
	}
	if len(summary.EventsByType) != 2 {
		t.Fatalf("expected 2 event types, got %d", len(summary.EventsByType))
	}
	if len(summary.TopPages) == 0 {
		t.Fatalf("expected top pages populated")
	}
}
