package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// PromptRepository 提示词数据访问
type PromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository 创建提示词仓库
func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// GetActive 获取 Agent 当前激活的提示词
func (r *PromptRepository) GetActive(agentID, ownerID string) (*model.Prompt, error) {
	var prompt model.Prompt
	err := r.db.Where("agent_id = ? AND owner_id = ? AND is_active = ?", agentID, ownerID, true).
		First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("no active prompt for agent %s", agentID)
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// UpsertActive 创建或更新激活的提示词
// 已有记录时原地覆盖文本并递增 version，返回 created=false；否则插入 version=1。
// 并发安全：同一 Agent 的 upsert 先拿事务级 advisory 锁串行化——首次插入时
// 没有行可锁，read committed 下两个事务会同时看到"无记录"而各插一条 active，
// 单靠行锁挡不住。已有记录的路径再叠加 FOR UPDATE，version 递增不会丢失。
// prompts 表上的部分唯一索引（见 database.AutoMigrate）是最后一道防线。
func (r *PromptRepository) UpsertActive(agentID, ownerID, systemPrompt string) (*model.Prompt, bool, error) {
	var prompt model.Prompt
	created := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", agentID).Error; err != nil {
			return err
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("agent_id = ? AND owner_id = ? AND is_active = ?", agentID, ownerID, true).
			First(&prompt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			prompt = model.Prompt{
				ID:           uuid.New().String(),
				AgentID:      agentID,
				OwnerID:      ownerID,
				SystemPrompt: systemPrompt,
				IsActive:     true,
				Version:      1,
			}
			created = true
			return tx.Create(&prompt).Error
		}
		if err != nil {
			return err
		}

		prompt.SystemPrompt = systemPrompt
		prompt.Version++
		return tx.Save(&prompt).Error
	})
	if err != nil {
		return nil, false, err
	}

	return &prompt, created, nil
}
