package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atelier-next/internal/ai"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
)

const assistSystemPrompt = "You are a helpful assistant for an online shop back office. " +
	"You help the administrator with products, orders, marketing and site content. " +
	"Answer concisely and practically."

// AssistService AI 助手服务
// 封装提示词构造与对话留痕，上游客户端注入便于替换与测试
type AssistService struct {
	client           ai.Client
	conversationRepo repository.AIConversationRepository
}

// NewAssistService 创建 AI 助手服务实例
func NewAssistService(client ai.Client, conversationRepo repository.AIConversationRepository) *AssistService {
	return &AssistService{
		client:           client,
		conversationRepo: conversationRepo,
	}
}

func (s *AssistService) complete(ctx context.Context, adminID uint, userMessage string, messages []ai.Message) (*models.AIConversation, error) {
	completion, err := s.client.Complete(ctx, messages)
	if err != nil {
		// 未配置密钥是部署问题，与上游故障区分开
		if errors.Is(err, ai.ErrNotConfigured) {
			return nil, ErrAssistDisabled
		}
		logger.Warnw("assist_completion_failed", "admin_id", adminID, "error", err)
		return nil, ErrAssistUnavailable
	}

	conversation := &models.AIConversation{
		AdminID:    adminID,
		Message:    userMessage,
		Response:   completion.Content,
		Model:      completion.Model,
		TokensUsed: completion.TokensUsed,
	}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// Chat 自由对话
func (s *AssistService) Chat(ctx context.Context, adminID uint, message string) (*models.AIConversation, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidParams
	}
	return s.complete(ctx, adminID, message, []ai.Message{
		{Role: "system", Content: assistSystemPrompt},
		{Role: "user", Content: message},
	})
}

// SeoSuggestions 根据页面内容生成 SEO 建议
func (s *AssistService) SeoSuggestions(ctx context.Context, adminID uint, page, content string) (*models.AIConversation, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		return nil, ErrInvalidParams
	}
	prompt := fmt.Sprintf(
		"Suggest SEO improvements for the page %q of an online shop. "+
			"Provide a meta title (under 60 characters), a meta description (under 160 characters) "+
			"and 5-10 keywords.\n\nPage content:\n%s",
		page, strings.TrimSpace(content),
	)
	return s.complete(ctx, adminID, prompt, []ai.Message{
		{Role: "system", Content: assistSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

// MarketingInsights 根据销售摘要生成营销建议
func (s *AssistService) MarketingInsights(ctx context.Context, adminID uint, salesSummary string) (*models.AIConversation, error) {
	prompt := fmt.Sprintf(
		"Based on the following sales summary of an online shop, provide actionable marketing insights: "+
			"what sells well, what to promote, and suggestions for campaigns or discounts.\n\n%s",
		strings.TrimSpace(salesSummary),
	)
	return s.complete(ctx, adminID, prompt, []ai.Message{
		{Role: "system", Content: assistSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

// ContentImprovement 改写站点文案
func (s *AssistService) ContentImprovement(ctx context.Context, adminID uint, content string) (*models.AIConversation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidParams
	}
	prompt := fmt.Sprintf(
		"Improve the following website copy. Keep the meaning, make it clearer and more engaging, "+
			"and return only the improved text.\n\n%s",
		content,
	)
	return s.complete(ctx, adminID, prompt, []ai.Message{
		{Role: "system", Content: assistSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

// EmailResponse 根据客户来信起草回复
func (s *AssistService) EmailResponse(ctx context.Context, adminID uint, customerMessage, tone string) (*models.AIConversation, error) {
	customerMessage = strings.TrimSpace(customerMessage)
	if customerMessage == "" {
		return nil, ErrInvalidParams
	}
	tone = strings.TrimSpace(tone)
	if tone == "" {
		tone = "professional and friendly"
	}
	prompt := fmt.Sprintf(
		"Draft a %s reply to the following customer email on behalf of the shop support team. "+
			"Return only the reply body.\n\nCustomer email:\n%s",
		tone, customerMessage,
	)
	return s.complete(ctx, adminID, prompt, []ai.Message{
		{Role: "system", Content: assistSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

// History 获取对话历史
func (s *AssistService) History(adminID uint, limit int) ([]models.AIConversation, error) {
	return s.conversationRepo.ListRecent(repository.AIConversationFilter{
		AdminID: adminID,
		Limit:   limit,
	})
}
