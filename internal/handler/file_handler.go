package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mingyue-ai/agenthub/internal/service"
	"github.com/mingyue-ai/agenthub/internal/service/file"
)

// FileHandler 文件处理器
type FileHandler struct {
	svc *service.Services
}

// NewFileHandler 创建文件处理器
func NewFileHandler(svc *service.Services) *FileHandler {
	return &FileHandler{svc: svc}
}

// UploadFile 上传文件
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: "please upload a file"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
		return
	}
	defer src.Close()

	attachment, err := h.svc.File.Upload(c.Request.Context(), &file.UploadRequest{
		AgentID:     c.Param("id"),
		OwnerID:     getUserID(c),
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Description: c.PostForm("description"),
		Reader:      src,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, attachment)
}

// ListFiles 列出 Agent 的文件
func (h *FileHandler) ListFiles(c *gin.Context) {
	files, err := h.svc.File.ListFiles(c.Request.Context(), c.Param("id"), getUserID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"count": len(files),
			"items": files,
		},
	})
}

// GetFile 获取文件详情
func (h *FileHandler) GetFile(c *gin.Context) {
	attachment, err := h.svc.File.GetFile(c.Request.Context(), c.Param("fileId"), c.Param("id"), getUserID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, attachment)
}

// DeleteFile 删除文件
func (h *FileHandler) DeleteFile(c *gin.Context) {
	if err := h.svc.File.DeleteFile(c.Request.Context(), c.Param("fileId"), c.Param("id"), getUserID(c)); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{})
}
