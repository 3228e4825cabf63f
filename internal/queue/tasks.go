package queue

import (
	"encoding/json"

	"github.com/atelier-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskContactNotifyEmail 联系表单通知任务
	TaskContactNotifyEmail = constants.TaskContactNotifyEmail
	// TaskOrderConfirmationEmail 订单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	// TaskNewsletterWelcomeEmail 订阅欢迎邮件任务
	TaskNewsletterWelcomeEmail = constants.TaskNewsletterWelcomeEmail
)

// ContactNotifyEmailPayload 联系表单通知任务载荷
type ContactNotifyEmailPayload struct {
	ContactID uint `json:"contact_id"`
}

// OrderConfirmationEmailPayload 订单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewsletterWelcomeEmailPayload 订阅欢迎邮件任务载荷
type NewsletterWelcomeEmailPayload struct {
	Email string `json:"email"`
}

// NewContactNotifyEmailTask 创建联系表单通知任务
func NewContactNotifyEmailTask(payload ContactNotifyEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotifyEmail, body), nil
}

// NewOrderConfirmationEmailTask 创建订单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// NewNewsletterWelcomeEmailTask 创建订阅欢迎邮件任务
func NewNewsletterWelcomeEmailTask(payload NewsletterWelcomeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNewsletterWelcomeEmail, body), nil
}
