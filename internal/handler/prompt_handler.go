package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mingyue-ai/agenthub/internal/service"
)

// PromptHandler 提示词处理器
type PromptHandler struct {
	svc *service.Services
}

// NewPromptHandler 创建提示词处理器
func NewPromptHandler(svc *service.Services) *PromptHandler {
	return &PromptHandler{svc: svc}
}

// GetPrompt 获取 Agent 的激活提示词
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	prompt, err := h.svc.Prompt.GetActivePrompt(c.Request.Context(), c.Param("id"), getUserID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, prompt)
}

// upsertPromptRequest 创建或更新提示词请求
type upsertPromptRequest struct {
	SystemPrompt string `json:"system_prompt" binding:"required"`
}

// CreateOrUpdatePrompt 创建或更新激活提示词
func (h *PromptHandler) CreateOrUpdatePrompt(c *gin.Context) {
	var req upsertPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
		return
	}

	result, err := h.svc.Prompt.CreateOrUpdatePrompt(c.Request.Context(), c.Param("id"), getUserID(c), req.SystemPrompt)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if result.Created {
		created(c, result.Prompt)
		return
	}
	success(c, result.Prompt)
}
