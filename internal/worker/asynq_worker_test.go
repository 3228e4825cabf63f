package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/provider"
	"github.com/atelier-next/internal/queue"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:asynq_worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Contact{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	// 邮件服务关闭时任务按配置问题跳过，不进入重试
	consumer := NewConsumer(&provider.Container{
		ContactRepo:  repository.NewContactRepository(db),
		OrderRepo:    repository.NewOrderRepository(db),
		EmailService: service.NewEmailService(&config.EmailConfig{}),
	})
	return consumer, db
}

func marshalPayload(t *testing.T, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return data
}

func TestIsEmailConfigError(t *testing.T) {
	if !isEmailConfigError(service.ErrEmailServiceDisabled) {
		t.Fatalf("disabled should be config error")
	}
	if !isEmailConfigError(fmt.Errorf("send: %w", service.ErrEmailServiceNotConfigured)) {
		t.Fatalf("wrapped not-configured should be config error")
	}
	if isEmailConfigError(fmt.Errorf("dial tcp: timeout")) {
		t.Fatalf("transport error should not be config error")
	}
	if isEmailConfigError(nil) {
		t.Fatalf("nil should not be config error")
	}
}

func TestHandleContactNotifyEmail(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	ctx := context.Background()

	badTask := asynq.NewTask(queue.TaskContactNotifyEmail, []byte("{not json"))
	if err := consumer.handleContactNotifyEmail(ctx, badTask); err == nil {
		t.Fatalf("broken payload should be returned for retry")
	}

	zeroTask := asynq.NewTask(queue.TaskContactNotifyEmail,
		marshalPayload(t, queue.ContactNotifyEmailPayload{ContactID: 0}))
	if err := consumer.handleContactNotifyEmail(ctx, zeroTask); err != nil {
		t.Fatalf("zero id should be skipped, got %v", err)
	}

	missingTask := asynq.NewTask(queue.TaskContactNotifyEmail,
		marshalPayload(t, queue.ContactNotifyEmailPayload{ContactID: 9999}))
	if err := consumer.handleContactNotifyEmail(ctx, missingTask); err != nil {
		t.Fatalf("missing contact should be skipped, got %v", err)
	}

	contact := &models.Contact{
		Name:    "Sara",
		Email:   "sara@example.com",
		Subject: "Order question",
		Message: "Where is my order?",
		Status:  constants.ContactStatusUnread,
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("create contact failed: %v", err)
	}
	okTask := asynq.NewTask(queue.TaskContactNotifyEmail,
		marshalPayload(t, queue.ContactNotifyEmailPayload{ContactID: contact.ID}))
	if err := consumer.handleContactNotifyEmail(ctx, okTask); err != nil {
		t.Fatalf("disabled email service should not fail the task, got %v", err)
	}
}

func TestHandleOrderConfirmationEmail(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	ctx := context.Background()

	zeroTask := asynq.NewTask(queue.TaskOrderConfirmationEmail,
		marshalPayload(t, queue.OrderConfirmationEmailPayload{OrderID: 0}))
	if err := consumer.handleOrderConfirmationEmail(ctx, zeroTask); err != nil {
		t.Fatalf("zero id should be skipped, got %v", err)
	}

	missingTask := asynq.NewTask(queue.TaskOrderConfirmationEmail,
		marshalPayload(t, queue.OrderConfirmationEmailPayload{OrderID: 9999}))
	if err := consumer.handleOrderConfirmationEmail(ctx, missingTask); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}

	noEmail := &models.Order{
		OrderNumber:   "ORD-1",
		CustomerName:  "Sara",
		CustomerEmail: "",
		TotalAmount:   models.NewMoneyFromFloat(42),
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if err := db.Create(noEmail).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	noEmailTask := asynq.NewTask(queue.TaskOrderConfirmationEmail,
		marshalPayload(t, queue.OrderConfirmationEmailPayload{OrderID: noEmail.ID}))
	if err := consumer.handleOrderConfirmationEmail(ctx, noEmailTask); err != nil {
		t.Fatalf("empty receiver should be skipped, got %v", err)
	}

	order := &models.Order{
		OrderNumber:   "ORD-2",
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		TotalAmount:   models.NewMoneyFromFloat(42),
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	okTask := asynq.NewTask(queue.TaskOrderConfirmationEmail,
		marshalPayload(t, queue.OrderConfirmationEmailPayload{OrderID: order.ID}))
	if err := consumer.handleOrderConfirmationEmail(ctx, okTask); err != nil {
		t.Fatalf("disabled email service should not fail the task, got %v", err)
	}
}

func TestHandleNewsletterWelcomeEmail(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	ctx := context.Background()

	badTask := asynq.NewTask(queue.TaskNewsletterWelcomeEmail, []byte("{not json"))
	if err := consumer.handleNewsletterWelcomeEmail(ctx, badTask); err == nil {
		t.Fatalf("broken payload should be returned for retry")
	}

	emptyTask := asynq.NewTask(queue.TaskNewsletterWelcomeEmail,
		marshalPayload(t, queue.NewsletterWelcomeEmailPayload{Email: "  "}))
	if err := consumer.handleNewsletterWelcomeEmail(ctx, emptyTask); err != nil {
		t.Fatalf("empty email should be skipped, got %v", err)
	}

	okTask := asynq.NewTask(queue.TaskNewsletterWelcomeEmail,
		marshalPayload(t, queue.NewsletterWelcomeEmailPayload{Email: "sara@example.com"}))
	if err := consumer.handleNewsletterWelcomeEmail(ctx, okTask); err != nil {
		t.Fatalf("disabled email service should not fail the task, got %v", err)
	}
}

func TestHandlersTolerateNilInputs(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	ctx := context.Background()

	if err := consumer.handleContactNotifyEmail(ctx, nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
	if err := consumer.handleOrderConfirmationEmail(ctx, nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
	if err := consumer.handleNewsletterWelcomeEmail(ctx, nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}

	var nilConsumer *Consumer
	nilConsumer.Register(asynq.NewServeMux())
	consumer.Register(nil)
}
