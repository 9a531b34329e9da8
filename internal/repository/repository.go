// Package repository 提供租户作用域的数据访问
// 所有读写都显式携带 ownerID 并并入 WHERE 条件，非 owner 无法触达任何记录。
package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB      *gorm.DB
	User    *UserRepository
	Agent   *AgentRepository
	Prompt  *PromptRepository
	Message *MessageRepository
	File    *FileRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:      db,
		User:    NewUserRepository(db),
		Agent:   NewAgentRepository(db),
		Prompt:  NewPromptRepository(db),
		Message: NewMessageRepository(db),
		File:    NewFileRepository(db),
	}
}
