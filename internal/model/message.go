package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// MessageMetadata 消息元数据
type MessageMetadata struct {
	Model            string `json:"model,omitempty"`
	FilesUsed        int    `json:"files_used,omitempty"`
	Tokens           int    `json:"tokens,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
}

// Message 对话消息，只插入不更新
// SessionID 为空表示消息不属于任何具体会话线程
type Message struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	AgentID   string          `gorm:"index:idx_messages_agent_owner;size:36;not null" json:"agent_id"`
	OwnerID   string          `gorm:"index:idx_messages_agent_owner;size:36;not null" json:"owner_id"`
	Role      string          `gorm:"size:20;not null" json:"role"`
	Content   string          `gorm:"size:10000;not null" json:"content"`
	SessionID string          `gorm:"index;size:64" json:"session_id,omitempty"`
	Metadata  MessageMetadata `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}

// MessageMetadata 实现 driver.Valuer 和 sql.Scanner
func (m MessageMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MessageMetadata) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

func (MessageMetadata) GormDataType() string {
	return "jsonb"
}
