package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/sales-management-golang/internal/ai"
	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/managers"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Pinger reports whether the database session is alive.
type Pinger interface {
	State() database.State
	Ping(ctx context.Context) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB        Pinger
	Managers  *managers.Managers
	Auth      *auth.Authenticator // nil when login is switched off
	Assistant *ai.Assistant       // nil when GEMINI_API_KEY is not set
}

// statusFor maps a manager error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrDisconnected):
		return http.StatusServiceUnavailable
	case errors.Is(err, managers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError sends a manager failure as JSON.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// respondBindError sends a 400 listing which fields failed which rule.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// paramID reads the :id path parameter.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// Ping is the handler for GET /v1/ping. It reports the database state too.
func (h *Handlers) Ping(c *gin.Context) {
	state := h.DB.State()
	if state == database.Connected {
		if err := h.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong!", "database": "unreachable", "error": err.Error()})
			return
		}
	}

	status := http.StatusOK
	if state != database.Connected {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"message": "pong!", "database": state.String()})
}
