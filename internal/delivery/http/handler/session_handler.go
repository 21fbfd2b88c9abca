package handler

import (
	"net/http"

	"flashdeals/internal/middleware"
	"flashdeals/internal/usecase/session"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service *session.Service
}

func NewSessionHandler(service *session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/me/sessions")
	{
		sessions.GET("", h.List)
		sessions.DELETE("/:session_id", h.Revoke)
	}
}

func (h *SessionHandler) List(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	currentSessionID, _ := middleware.GetSessionID(c)

	resp, err := h.service.List(c.Request.Context(), accountID, currentSessionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sessions retrieved successfully", resp)
}

func (h *SessionHandler) Revoke(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "session_id", "session id")
	if !ok {
		return
	}
	currentSessionID, _ := middleware.GetSessionID(c)

	resp, err := h.service.Revoke(c.Request.Context(), accountID, currentSessionID, sessionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := "Session revoked"
	if resp.Self {
		message = "Session revoked, please log in again"
	}
	utils.SuccessResponse(c, http.StatusOK, message, resp)
}
