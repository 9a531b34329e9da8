package service

import (
	"context"
	"log"

	"github.com/mingyue-ai/agenthub/internal/config"
	"github.com/mingyue-ai/agenthub/internal/repository"
	"github.com/mingyue-ai/agenthub/internal/service/agent"
	"github.com/mingyue-ai/agenthub/internal/service/auth"
	"github.com/mingyue-ai/agenthub/internal/service/chat"
	"github.com/mingyue-ai/agenthub/internal/service/completion"
	"github.com/mingyue-ai/agenthub/internal/service/extract"
	"github.com/mingyue-ai/agenthub/internal/service/file"
	"github.com/mingyue-ai/agenthub/internal/service/prompt"
)

// Services 服务集合
type Services struct {
	Auth   *auth.Service
	Agent  *agent.Service
	Prompt *prompt.Service
	Chat   *chat.Service
	File   *file.Service

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config) (*Services, error) {
	ctx := context.Background()

	completer, err := completion.NewService(ctx, cfg)
	if err != nil {
		// 没有可用的模型配置时服务仍可启动，对话接口会返回 CompletionFailed
		log.Printf("Warning: failed to create completion service: %v", err)
		completer = nil
	}

	var chatCompleter chat.Completer
	if completer != nil {
		chatCompleter = completer
	} else {
		chatCompleter = unavailableCompleter{}
	}

	fileService, err := file.NewServiceFromConfig(repo.Agent, repo.File, extract.New(), &cfg.File)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:   auth.NewService(repo.User),
		Agent:  agent.NewService(repo.Agent),
		Prompt: prompt.NewService(repo.Agent, repo.Prompt),
		Chat:   chat.NewService(repo.Agent, repo.Prompt, repo.Message, repo.File, chatCompleter, cfg.Chat),
		File:   fileService,

		Config: cfg,
	}, nil
}
