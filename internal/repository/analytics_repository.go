package repository

import (
	"strings"
	"time"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// EventTypeCount 事件类型计数
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// DailyCount 按天计数
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// PageViewCount 页面浏览计数
type PageViewCount struct {
	PageURL string `json:"page_url"`
	Count   int64  `json:"count"`
}

// AnalyticsRepository 埋点事件数据访问接口
type AnalyticsRepository interface {
	Create(event *models.AnalyticsEvent) error
	List(filter AnalyticsEventFilter) ([]models.AnalyticsEvent, int64, error)
	CountSince(since time.Time) (int64, error)
	CountByType(eventType string, since time.Time) (int64, error)
	CountUniqueVisitors(since time.Time) (int64, error)
	GroupByType(since time.Time) ([]EventTypeCount, error)
	DailyTrend(eventType string, since time.Time) ([]DailyCount, error)
	TopPages(since time.Time, limit int) ([]PageViewCount, error)
}

// GormAnalyticsRepository GORM 实现
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建埋点仓库
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// Create 写入事件
func (r *GormAnalyticsRepository) Create(event *models.AnalyticsEvent) error {
	return r.db.Create(event).Error
}

// List 事件列表
func (r *GormAnalyticsRepository) List(filter AnalyticsEventFilter) ([]models.AnalyticsEvent, int64, error) {
	var events []models.AnalyticsEvent

	query := r.db.Model(&models.AnalyticsEvent{})
	if eventType := strings.TrimSpace(filter.EventType); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// CountSince 统计时间段内事件总量
func (r *GormAnalyticsRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.AnalyticsEvent{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// CountByType 统计时间段内某类型事件数量
func (r *GormAnalyticsRepository) CountByType(eventType string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.AnalyticsEvent{}).
		Where("event_type = ? AND created_at >= ?", eventType, since).
		Count(&count).Error
	return count, err
}

// CountUniqueVisitors 按去重 IP 统计独立访客
func (r *GormAnalyticsRepository) CountUniqueVisitors(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.AnalyticsEvent{}).
		Where("created_at >= ? AND ip_address != ''", since).
		Distinct("ip_address").
		Count(&count).Error
	return count, err
}

// GroupByType 按事件类型分组统计
func (r *GormAnalyticsRepository) GroupByType(since time.Time) ([]EventTypeCount, error) {
	rows := make([]EventTypeCount, 0)
	err := r.db.Model(&models.AnalyticsEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("event_type").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyTrend 按天统计事件趋势
func (r *GormAnalyticsRepository) DailyTrend(eventType string, since time.Time) ([]DailyCount, error) {
	rows := make([]DailyCount, 0)
	dayExpr := dayBucketExpr(r.db, "created_at")
	query := r.db.Model(&models.AnalyticsEvent{}).
		Select(dayExpr+" AS day, COUNT(*) AS count").
		Where("created_at >= ?", since)
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	err := query.Group(dayExpr).Order("day ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopPages 统计访问最多的页面
func (r *GormAnalyticsRepository) TopPages(since time.Time, limit int) ([]PageViewCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows := make([]PageViewCount, 0)
	err := r.db.Model(&models.AnalyticsEvent{}).
		Select("page_url, COUNT(*) AS count").
		Where("created_at >= ? AND page_url != ''", since).
		Group("page_url").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
