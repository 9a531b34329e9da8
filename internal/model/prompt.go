package model

import "time"

// Prompt Agent 的系统提示词
// 不变量：同一 (agent_id, is_active=true) 至多一条记录，历史版本可以并存为 inactive。
// 更新复用同一条记录：覆盖文本并递增 version，不保留旧文本。
type Prompt struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	AgentID      string    `gorm:"index;size:36;not null" json:"agent_id"`
	OwnerID      string    `gorm:"index;size:36;not null" json:"owner_id"`
	SystemPrompt string    `gorm:"size:5000;not null" json:"system_prompt"`
	IsActive     bool      `gorm:"index;default:true" json:"is_active"`
	Version      int       `gorm:"default:1" json:"version"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Prompt) TableName() string {
	return "prompts"
}
