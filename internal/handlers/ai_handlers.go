package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatInput defines the structure of the JSON request body.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// ChatAssistant is the handler for POST /v1/assistant/chat
func (h *Handlers) ChatAssistant(c *gin.Context) {
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sales assistant is not configured"})
		return
	}

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	answer, tokens, err := h.Assistant.Ask(c.Request.Context(), input.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Service unavailable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":   answer,
		"tokensUsed": tokens,
	})
}
