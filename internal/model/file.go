package model

import "time"

// 文件状态
const (
	FileStatusUploaded  = "uploaded"
	FileStatusProcessed = "processed"
	FileStatusError     = "error"
	FileStatusDeleted   = "deleted"
)

// FileAttachment Agent 的参考文档
// ExtractedText 保存上传时抽取的纯文本，超长时截断并追加截断标记
type FileAttachment struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	AgentID       string    `gorm:"index:idx_files_agent_owner;size:36;not null" json:"agent_id"`
	OwnerID       string    `gorm:"index:idx_files_agent_owner;size:36;not null" json:"owner_id"`
	Filename      string    `gorm:"size:255;not null" json:"filename"`
	Size          int64     `gorm:"not null" json:"size"`
	MimeType      string    `gorm:"size:100;not null" json:"mime_type"`
	Status        string    `gorm:"index;size:20;default:uploaded" json:"status"`
	Description   string    `gorm:"size:500" json:"description,omitempty"`
	StoragePath   string    `gorm:"size:500" json:"-"`
	ExtractedText string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (FileAttachment) TableName() string {
	return "file_attachments"
}
