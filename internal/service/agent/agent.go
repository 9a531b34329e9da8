// Package agent 管理 Agent 的增删改查
package agent

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// Store Agent 存取接口
type Store interface {
	Create(agent *model.Agent) error
	GetByID(id, ownerID string) (*model.Agent, error)
	List(ownerID string) ([]*model.Agent, error)
	Update(agent *model.Agent) error
	DeleteCascade(id, ownerID string) error
}

// Service Agent 服务
type Service struct {
	agents Store
}

// NewService 创建 Agent 服务
func NewService(agents Store) *Service {
	return &Service{agents: agents}
}

// CreateAgentRequest 创建 Agent 请求
type CreateAgentRequest struct {
	Name        string              `json:"name" binding:"required,max=100"`
	Description string              `json:"description" binding:"max=500"`
	Settings    model.AgentSettings `json:"settings"`
}

// CreateAgent 创建 Agent
func (s *Service) CreateAgent(ctx context.Context, ownerID string, req *CreateAgentRequest) (*model.Agent, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Invalidf("agent name is required")
	}
	if err := validateSettings(&req.Settings); err != nil {
		return nil, err
	}

	agent := &model.Agent{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Settings:    req.Settings,
		IsActive:    true,
	}

	if err := s.agents.Create(agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// GetAgent 获取 Agent
func (s *Service) GetAgent(ctx context.Context, id, ownerID string) (*model.Agent, error) {
	return s.agents.GetByID(id, ownerID)
}

// ListAgents 列出用户的 Agent
func (s *Service) ListAgents(ctx context.Context, ownerID string) ([]*model.Agent, error) {
	return s.agents.List(ownerID)
}

// UpdateAgentRequest 更新 Agent 请求，零值字段不变更
type UpdateAgentRequest struct {
	Name        string               `json:"name" binding:"max=100"`
	Description *string              `json:"description"`
	Settings    *model.AgentSettings `json:"settings"`
	IsActive    *bool                `json:"is_active"`
}

// UpdateAgent 更新 Agent
func (s *Service) UpdateAgent(ctx context.Context, id, ownerID string, req *UpdateAgentRequest) (*model.Agent, error) {
	agent, err := s.agents.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		agent.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != nil {
		agent.Description = *req.Description
	}
	if req.Settings != nil {
		if err := validateSettings(req.Settings); err != nil {
			return nil, err
		}
		agent.Settings = *req.Settings
	}
	if req.IsActive != nil {
		agent.IsActive = *req.IsActive
	}

	if err := s.agents.Update(agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// DeleteAgent 删除 Agent，连带删除其提示词、消息和文件记录
func (s *Service) DeleteAgent(ctx context.Context, id, ownerID string) error {
	if _, err := s.agents.GetByID(id, ownerID); err != nil {
		return err
	}
	return s.agents.DeleteCascade(id, ownerID)
}

// validateSettings 校验生成参数范围，零值表示未设置
func validateSettings(settings *model.AgentSettings) error {
	if settings.Temperature < 0 || settings.Temperature > 2 {
		return apperrors.Invalidf("temperature must be between 0 and 2")
	}
	if settings.MaxTokens < 0 || settings.MaxTokens > 4096 {
		return apperrors.Invalidf("max_tokens must be between 1 and 4096")
	}
	return nil
}
