package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// LoginInput defines the JSON input for the admin login.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Login is not enabled"})
		return
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.Auth.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
