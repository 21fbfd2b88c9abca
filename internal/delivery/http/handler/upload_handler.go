package handler

import (
	"net/http"
	"time"

	"flashdeals/internal/storage"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PresignRequest struct {
	Kind        string `json:"kind" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty,max=255"`
}

type PresignResponse struct {
	UploadURL string    `json:"upload_url"`
	Reference string    `json:"reference"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UploadHandler struct {
	presigner storage.Presigner
}

func NewUploadHandler(presigner storage.Presigner) *UploadHandler {
	return &UploadHandler{presigner: presigner}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads/presign", h.Presign)
}

// Presign hands out a one-off upload URL; the returned reference is what offers, stores and tickets store
func (h *UploadHandler) Presign(c *gin.Context) {
	if _, ok := currentAccountID(c); !ok {
		return
	}

	var req PresignRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	upload, err := h.presigner.PresignUpload(c.Request.Context(), storage.Kind(req.Kind), req.ContentType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Upload URL issued", &PresignResponse{
		UploadURL: upload.URL,
		Reference: upload.Reference,
		ExpiresAt: upload.ExpiresAt,
	})
}
