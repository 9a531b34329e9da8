package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mingyue-ai/agenthub/internal/apperrors"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// FileRepository 文件附件数据访问
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建文件仓库
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create 创建文件记录
func (r *FileRepository) Create(file *model.FileAttachment) error {
	return r.db.Create(file).Error
}

// GetByID 获取文件记录
func (r *FileRepository) GetByID(id, agentID, ownerID string) (*model.FileAttachment, error) {
	var file model.FileAttachment
	err := r.db.Where("id = ? AND agent_id = ? AND owner_id = ?", id, agentID, ownerID).
		First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFoundf("file %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByAgent 列出 Agent 的全部文件记录
func (r *FileRepository) ListByAgent(agentID, ownerID string) ([]*model.FileAttachment, error) {
	var files []*model.FileAttachment
	err := r.db.Where("agent_id = ? AND owner_id = ?", agentID, ownerID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// ListUploaded 列出状态为 uploaded 的文件，按创建时间倒序取前 limit 条
func (r *FileRepository) ListUploaded(agentID, ownerID string, limit int) ([]*model.FileAttachment, error) {
	var files []*model.FileAttachment
	err := r.db.Where("agent_id = ? AND owner_id = ? AND status = ?", agentID, ownerID, model.FileStatusUploaded).
		Order("created_at DESC").
		Limit(limit).
		Find(&files).Error
	return files, err
}

// Delete 删除文件记录
func (r *FileRepository) Delete(id, agentID, ownerID string) error {
	return r.db.Delete(&model.FileAttachment{}, "id = ? AND agent_id = ? AND owner_id = ?", id, agentID, ownerID).Error
}
