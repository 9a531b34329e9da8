// Package chat 实现对话上下文组装
// 一次对话轮次的上下文 = 激活的系统提示词 + 文档上下文块 + 历史窗口 + 新的用户输入，
// 组装是确定性的，然后把用户消息和模型回复先后持久化。
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/config"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// Turn 模型可见的一轮消息，只携带角色和内容，不泄漏持久化元数据
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Settings 单次补全的生成参数
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Completer 补全调用边界
// 实现方对 (系统文本, 有序消息, 生成参数) 返回回复文本，失败时包装 apperrors.ErrCompletionFailed
type Completer interface {
	Complete(ctx context.Context, systemText string, messages []Turn, settings Settings) (string, error)
}

// AgentStore Agent 读取接口
type AgentStore interface {
	GetByID(id, ownerID string) (*model.Agent, error)
}

// PromptStore 提示词读取接口
type PromptStore interface {
	GetActive(agentID, ownerID string) (*model.Prompt, error)
}

// MessageStore 消息存取接口
type MessageStore interface {
	Create(msg *model.Message) error
	ListRecent(agentID, ownerID, sessionID string, limit int) ([]*model.Message, error)
	ListChronological(agentID, ownerID, sessionID string, limit int) ([]*model.Message, error)
}

// FileStore 文件附件读取接口
type FileStore interface {
	ListUploaded(agentID, ownerID string, limit int) ([]*model.FileAttachment, error)
}

// Service 对话服务
type Service struct {
	agents    AgentStore
	prompts   PromptStore
	messages  MessageStore
	files     FileStore
	completer Completer
	cfg       config.ChatConfig
}

// NewService 创建对话服务
func NewService(agents AgentStore, prompts PromptStore, messages MessageStore, files FileStore, completer Completer, cfg config.ChatConfig) *Service {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 10
	}
	if cfg.MaxContextFiles <= 0 {
		cfg.MaxContextFiles = 5
	}
	return &Service{
		agents:    agents,
		prompts:   prompts,
		messages:  messages,
		files:     files,
		completer: completer,
		cfg:       cfg,
	}
}

// SelectHistory 选取最近的历史窗口并恢复时间正序
// 取数按创建时间倒序 LIMIT windowSize（新消息优先进入窗口），
// 返回前反转为正序，模型上下文必须从旧读到新。
// sessionID 为空是刻意的策略：表示该 Agent 全部会话的消息，而不是"无会话的消息"。
func (s *Service) SelectHistory(ctx context.Context, agentID, ownerID, sessionID string, windowSize int) ([]Turn, error) {
	if windowSize <= 0 {
		windowSize = s.cfg.HistoryWindow
	}

	messages, err := s.messages.ListRecent(agentID, ownerID, sessionID, windowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	turns := make([]Turn, len(messages))
	for i, msg := range messages {
		turns[len(messages)-1-i] = Turn{Role: msg.Role, Content: msg.Content}
	}
	return turns, nil
}

// 文档上下文块的定界符，让模型能区分注入的参考材料和指令
const (
	docBlockHeader = "\n\n=== UPLOADED FILES CONTEXT ===\n"
	docBlockFooter = "\n=== END OF FILES ===\n\n"
)

// BuildDocumentContext 把已上传文件的抽取文本拼成定界文本块
// 最多取 maxFiles 个 status=uploaded 的文件，按创建时间倒序保证确定性。
// 没有符合条件的文件时返回空串和 0，调用方不得注入空的定界块。
func (s *Service) BuildDocumentContext(ctx context.Context, agentID, ownerID string, maxFiles int) (string, int, error) {
	if maxFiles <= 0 {
		maxFiles = s.cfg.MaxContextFiles
	}

	files, err := s.files.ListUploaded(agentID, ownerID, maxFiles)
	if err != nil {
		return "", 0, fmt.Errorf("failed to load files: %w", err)
	}
	if len(files) == 0 {
		return "", 0, nil
	}

	var b strings.Builder
	b.WriteString(docBlockHeader)
	for _, file := range files {
		if strings.TrimSpace(file.ExtractedText) != "" {
			b.WriteString(fmt.Sprintf("\n--- File: %s ---\n%s\n", file.Filename, file.ExtractedText))
		} else {
			b.WriteString(fmt.Sprintf("\n--- File: %s (No content available) ---\n", file.Filename))
		}
	}
	b.WriteString(docBlockFooter)

	return b.String(), len(files), nil
}

// TurnRequest 一次对话轮次请求
type TurnRequest struct {
	AgentID   string
	OwnerID   string
	Content   string
	SessionID string
}

// MessageView 对外返回的消息视图
// 只含 id/role/content/时间，owner、agent 标识和内部元数据不回传
type MessageView struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newMessageView(msg *model.Message) MessageView {
	return MessageView{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// TurnResult 一次对话轮次结果，只返回已持久化的两条消息
type TurnResult struct {
	UserMessage      MessageView `json:"user_message"`
	AssistantMessage MessageView `json:"assistant_message"`
}

// HandleTurn 处理一次对话轮次
//
// 步骤与失败语义：
//  1. 空输入 → ErrInvalidInput，无任何副作用
//  2. Agent 不存在 → ErrNotFound，先于提示词检查，两种缺失不会混淆
//  3. 无激活提示词 → ErrNotFound
//  4. 取历史窗口（按 sessionID 过滤）
//  5. 组装文档上下文块
//  6. 系统指令 = 提示词文本 + 文档块（文档块只追加在后，指令必须占据上下文开头）
//  7. 先持久化用户消息，再调模型——补全失败时用户说过的话仍有持久记录
//  8. 调用补全，生成参数逐项回退到全局默认值
//  9. 持久化助手回复，携带 {model, files_used} 元数据
//
// 第 7 步之后失败不回滚：部分进展对调用方可见且可重试，这是刻意的不对称。
// 同一会话的并发轮次不做串行化，双方的历史读取可能互不可见（接受的竞态）。
func (s *Service) HandleTurn(ctx context.Context, req *TurnRequest) (*TurnResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Invalidf("message is required")
	}

	agent, err := s.agents.GetByID(req.AgentID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.prompts.GetActive(agent.ID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	history, err := s.SelectHistory(ctx, agent.ID, req.OwnerID, req.SessionID, s.cfg.HistoryWindow)
	if err != nil {
		return nil, err
	}

	docContext, filesUsed, err := s.BuildDocumentContext(ctx, agent.ID, req.OwnerID, s.cfg.MaxContextFiles)
	if err != nil {
		return nil, err
	}

	systemText := prompt.SystemPrompt + docContext
	settings := s.resolveSettings(agent)

	userMessage := &model.Message{
		ID:        uuid.New().String(),
		AgentID:   agent.ID,
		OwnerID:   req.OwnerID,
		Role:      model.RoleUser,
		Content:   req.Content,
		SessionID: req.SessionID,
	}
	if err := s.messages.Create(userMessage); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	started := time.Now()
	reply, err := s.completer.Complete(ctx, systemText, append(history, Turn{Role: model.RoleUser, Content: req.Content}), settings)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCompletionFailed) {
			err = fmt.Errorf("%w: %v", apperrors.ErrCompletionFailed, err)
		}
		return nil, err
	}

	assistantMessage := &model.Message{
		ID:        uuid.New().String(),
		AgentID:   agent.ID,
		OwnerID:   req.OwnerID,
		Role:      model.RoleAssistant,
		Content:   reply,
		SessionID: req.SessionID,
		Metadata: model.MessageMetadata{
			Model:            settings.Model,
			FilesUsed:        filesUsed,
			ProcessingTimeMs: time.Since(started).Milliseconds(),
		},
	}
	if err := s.messages.Create(assistantMessage); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &TurnResult{
		UserMessage:      newMessageView(userMessage),
		AssistantMessage: newMessageView(assistantMessage),
	}, nil
}

// ListHistory 按时间正序返回对话历史，供历史查询接口使用
func (s *Service) ListHistory(ctx context.Context, agentID, ownerID, sessionID string, limit int) ([]*model.Message, error) {
	if _, err := s.agents.GetByID(agentID, ownerID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.messages.ListChronological(agentID, ownerID, sessionID, limit)
}

// resolveSettings 合成生成参数，Agent 未设置的项回退到全局默认
func (s *Service) resolveSettings(agent *model.Agent) Settings {
	settings := Settings{
		Model:       agent.Settings.Model,
		Temperature: agent.Settings.Temperature,
		MaxTokens:   agent.Settings.MaxTokens,
	}
	if settings.Model == "" {
		settings.Model = s.cfg.DefaultModel
	}
	if settings.Temperature <= 0 {
		settings.Temperature = s.cfg.DefaultTemperature
	}
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = s.cfg.DefaultMaxTokens
	}
	return settings
}
