package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/provider"
	"github.com/atelier-next/internal/queue"
	"github.com/atelier-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskContactNotifyEmail, c.handleContactNotifyEmail)
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskNewsletterWelcomeEmail, c.handleNewsletterWelcomeEmail)
}

func (c *Consumer) handleContactNotifyEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_contact_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ContactNotifyEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.ContactID == 0 {
		logger.Debugw("worker_contact_notify_skip_invalid_payload", "contact_id", payload.ContactID)
		return nil
	}
	contact, err := c.ContactRepo.GetByID(payload.ContactID)
	if err != nil {
		logger.Warnw("worker_contact_notify_fetch_failed", "contact_id", payload.ContactID, "error", err)
		return err
	}
	if contact == nil {
		logger.Debugw("worker_contact_notify_skip_not_found", "contact_id", payload.ContactID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_contact_notify_skip_email_service_nil", "contact_id", contact.ID)
		return nil
	}

	err = c.EmailService.SendContactNotify(service.ContactNotifyInput{
		Name:    contact.Name,
		Email:   contact.Email,
		Subject: contact.Subject,
		Message: contact.Message,
	})
	if err != nil {
		if isEmailConfigError(err) {
			logger.Debugw("worker_contact_notify_skip_email_disabled", "contact_id", contact.ID)
			return nil
		}
		logger.Warnw("worker_contact_notify_send_failed", "contact_id", contact.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail := strings.TrimSpace(order.CustomerEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_order_confirmation_skip_empty_receiver", "order_id", order.ID, "order_number", order.OrderNumber)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirmation_skip_email_service_nil", "order_id", order.ID)
		return nil
	}

	err = c.EmailService.SendOrderConfirmation(receiverEmail, service.OrderConfirmationInput{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		ItemCount:    len(order.Items),
	})
	if err != nil {
		if isEmailConfigError(err) {
			logger.Debugw("worker_order_confirmation_skip_email_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_confirmation_send_failed",
			"order_id", order.ID,
			"order_number", order.OrderNumber,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleNewsletterWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_newsletter_welcome_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NewsletterWelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_newsletter_welcome_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" {
		logger.Debugw("worker_newsletter_welcome_skip_empty_email")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_newsletter_welcome_skip_email_service_nil", "email", email)
		return nil
	}

	if err := c.EmailService.SendNewsletterWelcome(email); err != nil {
		if isEmailConfigError(err) {
			logger.Debugw("worker_newsletter_welcome_skip_email_disabled", "email", email)
			return nil
		}
		logger.Warnw("worker_newsletter_welcome_send_failed", "email", email, "error", err)
		return err
	}
	return nil
}

// isEmailConfigError 邮件服务未启用属于配置问题，不重试
func isEmailConfigError(err error) bool {
	return errors.Is(err, service.ErrEmailServiceDisabled) ||
		errors.Is(err, service.ErrEmailServiceNotConfigured)
}
