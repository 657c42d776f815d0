package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cardiomed/internal/agent"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultCheckInMessage = "Good morning! How am I doing with my blood pressure this week?"

type adviceRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Message string `json:"message"`
}

type knowledgeRequest struct {
	Question           string `json:"question" binding:"required"`
	UserID             *uint  `json:"user_id"`
	IncludeUserContext bool   `json:"include_user_context"`
}

// PostAdvice runs a daily check-in for the user in the body
func (h *Handler) PostAdvice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if req.Message == "" {
		req.Message = defaultCheckInMessage
	}
	h.advice(c, req)
}

// GetAdvice is the quick check-in; ?message overrides the default greeting
func (h *Handler) GetAdvice(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	h.advice(c, adviceRequest{
		UserID:  userID,
		Message: c.DefaultQuery("message", defaultCheckInMessage),
	})
}

func (h *Handler) advice(c *gin.Context, req adviceRequest) {
	if h.Advisor == nil {
		h.unavailable(c, "Health advisor")
		return
	}
	if _, ok := h.requireUser(c, req.UserID); !ok {
		return
	}

	run, err := h.Advisor.Advice(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrNotInitialized) {
			h.handleError(c, http.StatusServiceUnavailable, "Health advisor is not initialized", err)
			return
		}
		h.handleError(c, http.StatusInternalServerError, "Failed to get health advice", err)
		return
	}

	body := gin.H{
		"user_id":          req.UserID,
		"request_message":  req.Message,
		"advisor_response": run.Output,
		"run_id":           run.ID,
		"status":           run.Status,
		"steps":            run.Steps,
		"tools_used":       run.ToolsUsed,
	}
	if run.Status != agent.RunCompleted {
		h.logger.Warn("Health advisor run did not complete",
			zap.String("run_id", run.ID), zap.String("error", run.Error))
		body["error"] = "Failed to get health advice"
		c.JSON(http.StatusBadGateway, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) AdvisorStatus(c *gin.Context) {
	if h.Advisor == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not_configured", "message": "Health advisor is not configured"})
		return
	}
	status := h.Advisor.Status()
	label := "not_initialized"
	if status.Ready {
		label = "ready"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       label,
		"provider":     status.Provider,
		"tools":        status.Tools,
		"tools_loaded": len(status.Tools),
		"tool_server":  status.ToolServer,
	})
}

// PostKnowledgeQuestion answers a hypertension question from the knowledge base
func (h *Handler) PostKnowledgeQuestion(c *gin.Context) {
	var req knowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	h.ask(c, req)
}

// GetKnowledgeQuestion is the query-string form of PostKnowledgeQuestion
func (h *Handler) GetKnowledgeQuestion(c *gin.Context) {
	req := knowledgeRequest{Question: c.Query("question")}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			h.handleError(c, http.StatusBadRequest, "Invalid user_id", err)
			return
		}
		userID := uint(id)
		req.UserID = &userID
	}
	include, ok := boolQuery(c, "include_user_context", false)
	if !ok {
		return
	}
	req.IncludeUserContext = include
	h.ask(c, req)
}

func (h *Handler) ask(c *gin.Context, req knowledgeRequest) {
	if h.Knowledge == nil {
		h.unavailable(c, "Knowledge agent")
		return
	}
	if req.UserID != nil {
		if _, ok := h.requireUser(c, *req.UserID); !ok {
			return
		}
	}

	answer, err := h.Knowledge.Ask(c.Request.Context(), agent.AskRequest{
		Question:           req.Question,
		UserID:             req.UserID,
		IncludeUserContext: req.IncludeUserContext,
	})
	switch {
	case errors.Is(err, agent.ErrEmptyQuestion):
		h.handleError(c, http.StatusBadRequest, "question is required", err)
		return
	case errors.Is(err, agent.ErrNotInitialized):
		h.handleError(c, http.StatusServiceUnavailable, "Knowledge agent is not initialized", err)
		return
	case err != nil:
		h.handleError(c, http.StatusInternalServerError, "Failed to get knowledge agent response", err)
		return
	}

	body := gin.H{
		"question": req.Question,
		"answer":   answer.Answer,
		"sources":  answer.Sources,
		"user_id":  req.UserID,
		"run_id":   answer.RunID,
		"status":   answer.Status,
		"cached":   answer.Cached,
	}
	if answer.Status != agent.RunCompleted {
		h.logger.Warn("Knowledge agent run did not complete",
			zap.String("run_id", answer.RunID), zap.String("error", answer.Error))
		body["error"] = "Failed to get knowledge agent response"
		c.JSON(http.StatusBadGateway, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) KnowledgeStatus(c *gin.Context) {
	if h.Knowledge == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not_configured", "message": "Knowledge agent is not configured"})
		return
	}
	status := h.Knowledge.Status()
	label := "not_initialized"
	if status.Ready {
		label = "ready"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":               label,
		"provider":             status.Provider,
		"knowledge_base_files": status.Documents,
		"chunks":               status.Chunks,
		"cache":                status.Cache,
	})
}
