// Package completion 对接 eino ChatModel，实现 chat.Completer
package completion

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/config"
	chatsvc "github.com/mingyue-ai/agenthub/internal/service/chat"
)

// Service 补全服务
type Service struct {
	chatModel model.ChatModel
}

// NewService 按配置创建补全服务
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Service{chatModel: chatModel}, nil
}

// NewServiceWithModel 用现成的 ChatModel 创建补全服务
func NewServiceWithModel(chatModel model.ChatModel) *Service {
	return &Service{chatModel: chatModel}
}

// Complete 调用模型生成回复
// 不解读 provider 细节，失败一律归为 CompletionFailed
func (s *Service) Complete(ctx context.Context, systemText string, messages []chatsvc.Turn, settings chatsvc.Settings) (string, error) {
	einoMessages := make([]*schema.Message, 0, len(messages)+1)
	einoMessages = append(einoMessages, &schema.Message{Role: schema.System, Content: systemText})
	for _, msg := range messages {
		einoMessages = append(einoMessages, &schema.Message{Role: toSchemaRole(msg.Role), Content: msg.Content})
	}

	resp, err := s.chatModel.Generate(ctx, einoMessages,
		model.WithModel(settings.Model),
		model.WithTemperature(float32(settings.Temperature)),
		model.WithMaxTokens(settings.MaxTokens),
	)
	if err != nil {
		return "", apperrors.CompletionFailedf("model call failed: %v", err)
	}
	if resp == nil || resp.Content == "" {
		return "", apperrors.CompletionFailedf("model returned empty response")
	}

	return resp.Content, nil
}

// toSchemaRole 映射消息角色
func toSchemaRole(role string) schema.RoleType {
	switch role {
	case "assistant":
		return schema.Assistant
	case "system":
		return schema.System
	default:
		return schema.User
	}
}

// newChatModel 创建 ChatModel，所有 provider 都走 OpenAI 兼容接口
func newChatModel(ctx context.Context, cfg *config.Config) (model.ChatModel, error) {
	aiCfg := cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
		modelName = aiCfg.DeepSeek.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}
	if modelName == "" {
		modelName = cfg.Chat.DefaultModel
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
}
