package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// AgentRepository Agent 数据访问
type AgentRepository struct {
	db *gorm.DB
}

// NewAgentRepository 创建 Agent 仓库
func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create 创建 Agent
func (r *AgentRepository) Create(agent *model.Agent) error {
	return r.db.Create(agent).Error
}

// GetByID 获取 Agent，按 owner 过滤
func (r *AgentRepository) GetByID(id, ownerID string) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("agent %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// List 列出用户的全部 Agent
func (r *AgentRepository) List(ownerID string) ([]*model.Agent, error) {
	var agents []*model.Agent
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&agents).Error
	return agents, err
}

// Update 更新 Agent
func (r *AgentRepository) Update(agent *model.Agent) error {
	return r.db.Save(agent).Error
}

// DeleteCascade 删除 Agent 及其从属记录
// Prompt/Message/FileAttachment 在同一事务里一并删除，避免留下不可达的孤儿行
func (r *AgentRepository) DeleteCascade(id, ownerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Prompt{}, "agent_id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Message{}, "agent_id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.FileAttachment{}, "agent_id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Agent{}, "id = ? AND owner_id = ?", id, ownerID).Error
	})
}
