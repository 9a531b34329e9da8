package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mingyue-ai/agenthub/internal/service"
	"github.com/mingyue-ai/agenthub/internal/service/chat"
)

// ChatHandler 对话处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建对话处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// sendMessageRequest 发送消息请求
type sendMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// SendMessage 发送消息并返回持久化后的一问一答
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
		return
	}

	result, err := h.svc.Chat.HandleTurn(c.Request.Context(), &chat.TurnRequest{
		AgentID:   c.Param("id"),
		OwnerID:   getUserID(c),
		Content:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}

// GetHistory 获取对话历史，时间正序
func (h *ChatHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.svc.Chat.ListHistory(
		c.Request.Context(),
		c.Param("id"),
		getUserID(c),
		c.Query("session_id"),
		limit,
	)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"count": len(messages),
			"items": messages,
		},
	})
}
