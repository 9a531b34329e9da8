package handler

import (
	"github.com/mingyue-ai/agenthub/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth   *AuthHandler
	Agent  *AgentHandler
	Prompt *PromptHandler
	Chat   *ChatHandler
	File   *FileHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(svc),
		Agent:  NewAgentHandler(svc),
		Prompt: NewPromptHandler(svc),
		Chat:   NewChatHandler(svc),
		File:   NewFileHandler(svc),
	}
}
