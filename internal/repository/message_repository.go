package repository

import (
	"gorm.io/gorm"

	"github.com/mingyue-ai/agenthub/internal/model"
)

// MessageRepository 消息数据访问，消息只插入不更新
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 插入消息
func (r *MessageRepository) Create(msg *model.Message) error {
	return r.db.Create(msg).Error
}

// ListRecent 获取最近 limit 条消息，按创建时间倒序
// sessionID 为空时不过滤会话，返回该 Agent 下所有会话的消息
func (r *MessageRepository) ListRecent(agentID, ownerID, sessionID string, limit int) ([]*model.Message, error) {
	var messages []*model.Message
	query := r.db.Where("agent_id = ? AND owner_id = ?", agentID, ownerID)
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

// ListChronological 获取消息，按创建时间正序
func (r *MessageRepository) ListChronological(agentID, ownerID, sessionID string, limit int) ([]*model.Message, error) {
	var messages []*model.Message
	query := r.db.Where("agent_id = ? AND owner_id = ?", agentID, ownerID)
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}
	err := query.Order("created_at ASC").Limit(limit).Find(&messages).Error
	return messages, err
}
