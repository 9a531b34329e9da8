// Package prompt 管理 Agent 的系统提示词
package prompt

import (
	"context"
	"strings"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// AgentStore Agent 读取接口
type AgentStore interface {
	GetByID(id, ownerID string) (*model.Agent, error)
}

// PromptStore 提示词存取接口
type PromptStore interface {
	GetActive(agentID, ownerID string) (*model.Prompt, error)
	UpsertActive(agentID, ownerID, systemPrompt string) (*model.Prompt, bool, error)
}

// Service 提示词服务
type Service struct {
	agents  AgentStore
	prompts PromptStore
}

// NewService 创建提示词服务
func NewService(agents AgentStore, prompts PromptStore) *Service {
	return &Service{agents: agents, prompts: prompts}
}

// GetActivePrompt 解析 Agent 当前激活的提示词
// 先确认 Agent 存在：Agent 缺失与提示词未配置是两种 NotFound，错误消息不混淆
func (s *Service) GetActivePrompt(ctx context.Context, agentID, ownerID string) (*model.Prompt, error) {
	if _, err := s.agents.GetByID(agentID, ownerID); err != nil {
		return nil, err
	}
	return s.prompts.GetActive(agentID, ownerID)
}

// UpsertResult 创建或更新结果
type UpsertResult struct {
	Prompt  *model.Prompt `json:"prompt"`
	Created bool          `json:"created"`
}

// CreateOrUpdatePrompt 创建或更新激活的提示词
// 首次保存插入 version=1；之后复用同一条记录，覆盖文本并递增 version。
// 单 Agent 单 active 的不变量由仓库层的事务 upsert 保证。
func (s *Service) CreateOrUpdatePrompt(ctx context.Context, agentID, ownerID, systemPrompt string) (*UpsertResult, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, apperrors.Invalidf("system prompt is required")
	}
	if len(systemPrompt) > 5000 {
		return nil, apperrors.Invalidf("system prompt cannot exceed 5000 characters")
	}

	if _, err := s.agents.GetByID(agentID, ownerID); err != nil {
		return nil, err
	}

	prompt, created, err := s.prompts.UpsertActive(agentID, ownerID, systemPrompt)
	if err != nil {
		return nil, err
	}

	return &UpsertResult{Prompt: prompt, Created: created}, nil
}
