// Package file 管理 Agent 的参考文档：上传、文本抽取、删除
package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/config"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// 抽取文本的截断标记
const truncationMarker = "\n\n[Content truncated...]"

// AgentStore Agent 读取接口
type AgentStore interface {
	GetByID(id, ownerID string) (*model.Agent, error)
}

// RecordStore 文件记录存取接口
type RecordStore interface {
	Create(file *model.FileAttachment) error
	GetByID(id, agentID, ownerID string) (*model.FileAttachment, error)
	ListByAgent(agentID, ownerID string) ([]*model.FileAttachment, error)
	Delete(id, agentID, ownerID string) error
}

// Extractor 文本抽取边界，bytes → text
type Extractor interface {
	Extract(ctx context.Context, reader io.Reader, filename, mimeType string) (string, error)
}

// Service 文件服务
type Service struct {
	agents       AgentStore
	records      RecordStore
	storage      Storage
	extractor    Extractor
	maxExtracted int
}

// NewService 创建文件服务
func NewService(agents AgentStore, records RecordStore, storage Storage, extractor Extractor, maxExtracted int) *Service {
	if maxExtracted <= 0 {
		maxExtracted = 50000
	}
	return &Service{
		agents:       agents,
		records:      records,
		storage:      storage,
		extractor:    extractor,
		maxExtracted: maxExtracted,
	}
}

// NewServiceFromConfig 从配置创建文件服务
func NewServiceFromConfig(agents AgentStore, records RecordStore, extractor Extractor, cfg *config.FileConfig) (*Service, error) {
	var storage Storage
	var err error

	switch StorageType(cfg.Type) {
	case StorageTypeLocal, "":
		storage, err = NewLocalStorage(cfg.Local.BasePath, cfg.Local.URLPrefix)

	case StorageTypeMinIO:
		if cfg.MinIO.Endpoint == "" || cfg.MinIO.AccessKey == "" || cfg.MinIO.SecretKey == "" || cfg.MinIO.Bucket == "" {
			return nil, fmt.Errorf("missing required MinIO config")
		}
		urlPrefix := cfg.MinIO.URLPrefix
		if urlPrefix == "" {
			urlPrefix = fmt.Sprintf("%s/%s", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
		}
		storage, err = NewMinIOStorage(&MinIOConfig{
			Endpoint:   cfg.MinIO.Endpoint,
			AccessKey:  cfg.MinIO.AccessKey,
			SecretKey:  cfg.MinIO.SecretKey,
			BucketName: cfg.MinIO.Bucket,
			UseSSL:     cfg.MinIO.UseSSL,
			URLPrefix:  urlPrefix,
		})

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	return NewService(agents, records, storage, extractor, cfg.MaxExtractedChars), nil
}

// UploadRequest 上传请求
type UploadRequest struct {
	AgentID     string
	OwnerID     string
	Filename    string
	Size        int64
	MimeType    string
	Description string
	Reader      io.Reader
}

// Upload 上传文件：保存到存储、抽取文本、落库
// 抽取失败不中断上传，记录换用占位文本
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (*model.FileAttachment, error) {
	if req.Filename == "" || req.Reader == nil {
		return nil, apperrors.Invalidf("file is required")
	}

	if _, err := s.agents.GetByID(req.AgentID, req.OwnerID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	storagePath, err := s.storage.Save(ctx, &SaveRequest{
		FileName:    req.Filename,
		ContentType: req.MimeType,
		Size:        int64(len(data)),
		Reader:      bytes.NewReader(data),
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	extractedText, err := s.extractor.Extract(ctx, bytes.NewReader(data), req.Filename, req.MimeType)
	if err != nil {
		log.Printf("Warning: text extraction failed for %s: %v", req.Filename, err)
		extractedText = fmt.Sprintf("[Unable to extract text from %s]", req.Filename)
	}
	if len(extractedText) > s.maxExtracted {
		// 截断点回退到 rune 边界，不能留下半个多字节字符
		cut := s.maxExtracted
		for cut > 0 && !utf8.RuneStart(extractedText[cut]) {
			cut--
		}
		extractedText = extractedText[:cut] + truncationMarker
	}

	attachment := &model.FileAttachment{
		ID:            uuid.New().String(),
		AgentID:       req.AgentID,
		OwnerID:       req.OwnerID,
		Filename:      req.Filename,
		Size:          int64(len(data)),
		MimeType:      req.MimeType,
		Status:        model.FileStatusUploaded,
		Description:   req.Description,
		StoragePath:   storagePath,
		ExtractedText: extractedText,
	}

	if err := s.records.Create(attachment); err != nil {
		// 落库失败时清理已保存的对象
		_ = s.storage.Delete(ctx, storagePath)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return attachment, nil
}

// GetFile 获取文件记录
func (s *Service) GetFile(ctx context.Context, id, agentID, ownerID string) (*model.FileAttachment, error) {
	return s.records.GetByID(id, agentID, ownerID)
}

// ListFiles 列出 Agent 的文件记录
func (s *Service) ListFiles(ctx context.Context, agentID, ownerID string) ([]*model.FileAttachment, error) {
	if _, err := s.agents.GetByID(agentID, ownerID); err != nil {
		return nil, err
	}
	return s.records.ListByAgent(agentID, ownerID)
}

// DeleteFile 删除文件：两步 saga
// 先尽力删除外部存储对象（失败只记日志），再无条件删除本地记录
func (s *Service) DeleteFile(ctx context.Context, id, agentID, ownerID string) error {
	attachment, err := s.records.GetByID(id, agentID, ownerID)
	if err != nil {
		return err
	}

	if attachment.StoragePath != "" {
		if err := s.storage.Delete(ctx, attachment.StoragePath); err != nil {
			log.Printf("Warning: failed to delete stored object %s: %v", attachment.StoragePath, err)
		}
	}

	return s.records.Delete(id, agentID, ownerID)
}
