package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mingyue-ai/agenthub/internal/service"
	"github.com/mingyue-ai/agenthub/internal/service/agent"
)

// AgentHandler Agent 处理器
type AgentHandler struct {
	svc *service.Services
}

// NewAgentHandler 创建 Agent 处理器
func NewAgentHandler(svc *service.Services) *AgentHandler {
	return &AgentHandler{svc: svc}
}

// CreateAgent 创建 Agent
func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var req agent.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
		return
	}

	result, err := h.svc.Agent.CreateAgent(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, result)
}

// GetAgent 获取 Agent
func (h *AgentHandler) GetAgent(c *gin.Context) {
	result, err := h.svc.Agent.GetAgent(c.Request.Context(), c.Param("id"), getUserID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}

// ListAgents 列出 Agent
func (h *AgentHandler) ListAgents(c *gin.Context) {
	result, err := h.svc.Agent.ListAgents(c.Request.Context(), getUserID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}

// UpdateAgent 更新 Agent
func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	var req agent.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
		return
	}

	result, err := h.svc.Agent.UpdateAgent(c.Request.Context(), c.Param("id"), getUserID(c), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}

// DeleteAgent 删除 Agent
func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	if err := h.svc.Agent.DeleteAgent(c.Request.Context(), c.Param("id"), getUserID(c)); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{})
}
