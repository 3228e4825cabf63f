package service

import (
	"net/mail"
	"time"

	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/queue"
	"github.com/atelier-next/internal/repository"
)

// NewsletterService 邮件订阅服务
type NewsletterService struct {
	newsletterRepo repository.NewsletterRepository
	queueClient    *queue.Client
}

// NewNewsletterService 创建邮件订阅服务实例
func NewNewsletterService(newsletterRepo repository.NewsletterRepository, queueClient *queue.Client) *NewsletterService {
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		queueClient:    queueClient,
	}
}

// Subscribe 订阅
// 已退订的邮箱重新激活，已激活的邮箱返回冲突
func (s *NewsletterService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, ErrInvalidParams
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return nil, ErrInvalidEmail
	}

	existing, err := s.newsletterRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive {
			return nil, ErrConflict
		}
		existing.IsActive = true
		existing.SubscribedAt = time.Now()
		existing.UnsubscribedAt = nil
		if err := s.newsletterRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	subscriber := &models.NewsletterSubscriber{
		Email:        normalized,
		IsActive:     true,
		SubscribedAt: time.Now(),
	}
	if err := s.newsletterRepo.Create(subscriber); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueNewsletterWelcomeEmail(queue.NewsletterWelcomeEmailPayload{Email: normalized}); err != nil {
		logger.Warnw("newsletter_welcome_enqueue_failed", "email", normalized, "error", err)
	}
	return subscriber, nil
}

// Unsubscribe 退订，保留记录并记录时间
func (s *NewsletterService) Unsubscribe(email string) error {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return ErrInvalidParams
	}

	subscriber, err := s.newsletterRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if subscriber == nil {
		return ErrNotFound
	}
	if !subscriber.IsActive {
		return nil
	}

	now := time.Now()
	subscriber.IsActive = false
	subscriber.UnsubscribedAt = &now
	return s.newsletterRepo.Update(subscriber)
}

// List 订阅列表
func (s *NewsletterService) List(filter repository.NewsletterListFilter) ([]models.NewsletterSubscriber, int64, error) {
	return s.newsletterRepo.List(filter)
}

// CountActive 统计有效订阅数量
func (s *NewsletterService) CountActive() (int64, error) {
	return s.newsletterRepo.CountActive()
}
