package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// 默认请求参数，与常见 OpenAI 兼容服务保持一致
const (
	defaultModel     = "gpt-3.5-turbo"
	defaultMaxTokens = 1000
	defaultTimeout   = 30 * time.Second
	temperature      = 0.7
)

// ErrNotConfigured 未配置 API Key
var ErrNotConfigured = errors.New("ai client not configured")

// Message 对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion 补全结果
type Completion struct {
	Content    string
	Model      string
	TokensUsed int
}

// Client 对话补全客户端接口，便于测试替换
type Client interface {
	Complete(ctx context.Context, messages []Message) (*Completion, error)
}

// Options HTTP 客户端配置
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
}

// HTTPClient OpenAI 兼容接口的 HTTP 实现
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	maxRetries int
	httpClient *http.Client
}

// NewHTTPClient 创建 HTTP 客户端
func NewHTTPClient(opts Options) *HTTPClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		maxTokens:  maxTokens,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete 调用 chat completions 接口
// 5xx 与网络错误按配置重试一次
func (c *HTTPClient) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if len(messages) == 0 {
		return nil, errors.New("empty messages")
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		completion, retryable, err := c.doRequest(ctx, payload)
		if err == nil {
			return completion, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *HTTPClient) doRequest(ctx context.Context, payload []byte) (*Completion, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		var parsed chatCompletionResponse
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
			return nil, false, fmt.Errorf("upstream error: %s", parsed.Error.Message)
		}
		return nil, false, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, err
	}
	if len(parsed.Choices) == 0 {
		return nil, false, errors.New("upstream returned no choices")
	}

	model := parsed.Model
	if model == "" {
		model = c.model
	}
	return &Completion{
		Content:    parsed.Choices[0].Message.Content,
		Model:      model,
		TokensUsed: parsed.Usage.TotalTokens,
	}, false, nil
}
