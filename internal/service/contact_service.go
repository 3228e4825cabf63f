package service

import (
	"net/mail"
	"strings"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/queue"
	"github.com/atelier-next/internal/repository"
)

// ContactSubmitInput 联系表单提交入参
type ContactSubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService 联系表单服务
type ContactService struct {
	contactRepo repository.ContactRepository
	queueClient *queue.Client
}

// NewContactService 创建联系表单服务实例
func NewContactService(contactRepo repository.ContactRepository, queueClient *queue.Client) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		queueClient: queueClient,
	}
}

// Submit 提交联系表单并异步通知管理员
func (s *ContactService) Submit(input ContactSubmitInput) (*models.Contact, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, ErrInvalidParams
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
		Status:  constants.ContactStatusUnread,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueContactNotifyEmail(queue.ContactNotifyEmailPayload{ContactID: contact.ID}); err != nil {
		// 通知失败不影响提交成功
		logger.Warnw("contact_notify_enqueue_failed", "contact_id", contact.ID, "error", err)
	}
	return contact, nil
}

// List 联系表单列表
func (s *ContactService) List(filter repository.ContactListFilter) ([]models.Contact, int64, error) {
	return s.contactRepo.List(filter)
}

// GetByID 获取联系记录
func (s *ContactService) GetByID(id uint) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}
	return contact, nil
}

// UpdateStatus 更新处理状态
func (s *ContactService) UpdateStatus(id uint, status string) (*models.Contact, error) {
	valid := false
	for _, st := range constants.ContactStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidParams
	}

	affected, err := s.contactRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.contactRepo.GetByID(id)
}

// Delete 删除联系记录
func (s *ContactService) Delete(id uint) error {
	affected, err := s.contactRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
