package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AgentSettings 生成参数
// Model/Temperature/MaxTokens 为零值时，由 chat 服务回退到全局默认值
type AgentSettings struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"` // [0, 2]
	MaxTokens   int     `json:"max_tokens,omitempty"`  // [1, 4096]
}

// Agent AI 代理配置，归属于单个用户
type Agent struct {
	ID          string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID     string        `gorm:"index;size:36;not null" json:"owner_id"`
	Name        string        `gorm:"size:100;not null" json:"name"`
	Description string        `gorm:"size:500" json:"description"`
	Settings    AgentSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	IsActive    bool          `gorm:"index;default:true" json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName 指定表名
func (Agent) TableName() string {
	return "agents"
}

// AgentSettings 实现 driver.Valuer 和 sql.Scanner
func (s AgentSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *AgentSettings) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

func (AgentSettings) GormDataType() string {
	return "jsonb"
}
