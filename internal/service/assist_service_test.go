package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/ai"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type stubAIClient struct {
	completion *ai.Completion
	err        error
}

func (c *stubAIClient) Complete(_ context.Context, _ []ai.Message) (*ai.Completion, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.completion, nil
}

func setupAssistServiceTest(t *testing.T, client ai.Client) (*AssistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:assist_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AIConversation{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAssistService(client, repository.NewAIConversationRepository(db)), db
}

func TestAssistChatPersistsConversation(t *testing.T) {
	svc, db := setupAssistServiceTest(t, &stubAIClient{
		completion: &ai.Completion{Content: "Try bundling the bowls.", Model: "gpt-4o-mini", TokensUsed: 20},
	})

	conversation, err := svc.Chat(context.Background(), 1, " How do I sell more bowls? ")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if conversation.Response != "Try bundling the bowls." || conversation.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected conversation: %+v", conversation)
	}

	var count int64
	if err := db.Model(&models.AIConversation{}).Count(&count).Error; err != nil {
		t.Fatalf("count conversations failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored conversation, got %d", count)
	}

	if _, err := svc.Chat(context.Background(), 1, "   "); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for empty message, got %v", err)
	}
}

func TestAssistChatWithoutAPIKeyIsDisabled(t *testing.T) {
	// 未配置密钥的真实客户端
	svc, _ := setupAssistServiceTest(t, ai.NewHTTPClient(ai.Options{}))

	if _, err := svc.Chat(context.Background(), 1, "hello"); !errors.Is(err, ErrAssistDisabled) {
		t.Fatalf("expected ErrAssistDisabled, got %v", err)
	}
}

func TestAssistChatUpstreamFailureIsUnavailable(t *testing.T) {
	svc, db := setupAssistServiceTest(t, &stubAIClient{err: errors.New("upstream error: status 500")})

	if _, err := svc.Chat(context.Background(), 1, "hello"); !errors.Is(err, ErrAssistUnavailable) {
		t.Fatalf("expected ErrAssistUnavailable, got %v", err)
	}

	// 失败不留痕
	var count int64
	if err := db.Model(&models.AIConversation{}).Count(&count).Error; err != nil {
		t.Fatalf("count conversations failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no stored conversations, got %d", count)
	}
}
