package handler

import (
	"errors"
	"net/http"

	"flashdeals/internal/logger"
	"flashdeals/internal/middleware"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var codeStatus = map[string]int{
	appErrors.CodeValidation:         http.StatusBadRequest,
	appErrors.CodeInvalidOTP:         http.StatusBadRequest,
	appErrors.CodeUnauthorized:       http.StatusUnauthorized,
	appErrors.CodeInvalidCredentials: http.StatusUnauthorized,
	appErrors.CodeForbidden:          http.StatusForbidden,
	appErrors.CodeNotFound:           http.StatusNotFound,
	appErrors.CodeConflict:           http.StatusConflict,
}

// respondWithError maps error codes onto HTTP statuses; anything uncoded is a 500 with a generic message
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := codeStatus[appErr.Code]; ok {
			utils.ErrorResponse(c, status, appErr.Message)
			return
		}
	}

	_ = c.Error(err)
	logger.Error("Internal server error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func currentAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return accountID, true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}
