package service

import (
	"strings"
	"time"

	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
)

const analyticsDefaultDays = 30

// AnalyticsTrackInput 埋点事件入参
type AnalyticsTrackInput struct {
	EventType string
	EventData models.JSON
	PageURL   string
	IPAddress string
	UserAgent string
}

// AnalyticsSummary 埋点汇总
type AnalyticsSummary struct {
	TotalEvents    int64                       `json:"total_events"`
	PageViews      int64                       `json:"page_views"`
	UniqueVisitors int64                       `json:"unique_visitors"`
	EventsByType   []repository.EventTypeCount `json:"events_by_type"`
	DailyTrend     []repository.DailyCount     `json:"daily_trend"`
	TopPages       []repository.PageViewCount  `json:"top_pages"`
	PeriodDays     int                         `json:"period_days"`
}

// AnalyticsService 埋点分析服务
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService 创建埋点分析服务实例
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// Track 记录事件
func (s *AnalyticsService) Track(input AnalyticsTrackInput) (*models.AnalyticsEvent, error) {
	eventType := strings.TrimSpace(input.EventType)
	if eventType == "" {
		return nil, ErrInvalidParams
	}

	event := &models.AnalyticsEvent{
		EventType:     eventType,
		EventDataJSON: input.EventData,
		PageURL:       strings.TrimSpace(input.PageURL),
		IPAddress:     strings.TrimSpace(input.IPAddress),
		UserAgent:     input.UserAgent,
	}
	if err := s.analyticsRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// List 事件列表
func (s *AnalyticsService) List(filter repository.AnalyticsEventFilter) ([]models.AnalyticsEvent, int64, error) {
	return s.analyticsRepo.List(filter)
}

// Summary 汇总统计
func (s *AnalyticsService) Summary(days int) (*AnalyticsSummary, error) {
	if days <= 0 {
		days = analyticsDefaultDays
	}
	since := time.Now().AddDate(0, 0, -days)

	total, err := s.analyticsRepo.CountSince(since)
	if err != nil {
		return nil, err
	}
	pageViews, err := s.analyticsRepo.CountByType("page_view", since)
	if err != nil {
		return nil, err
	}
	visitors, err := s.analyticsRepo.CountUniqueVisitors(since)
	if err != nil {
		return nil, err
	}
	byType, err := s.analyticsRepo.GroupByType(since)
	if err != nil {
		return nil, err
	}
	trend, err := s.analyticsRepo.DailyTrend("", since)
	if err != nil {
		return nil, err
	}
	topPages, err := s.analyticsRepo.TopPages(since, 10)
	if err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		TotalEvents:    total,
		PageViews:      pageViews,
		UniqueVisitors: visitors,
		EventsByType:   byType,
		DailyTrend:     trend,
		TopPages:       topPages,
		PeriodDays:     days,
	}, nil
}
