package service

import (
	"context"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/service/chat"
)

// unavailableCompleter 模型未配置时的兜底实现
type unavailableCompleter struct{}

func (unavailableCompleter) Complete(ctx context.Context, systemText string, messages []chat.Turn, settings chat.Settings) (string, error) {
	return "", apperrors.CompletionFailedf("no completion provider configured")
}
