package handler

import (
	"net/http"

	"flashdeals/internal/usecase/account"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves staff review of vendor applications
type AdminHandler struct {
	accounts *account.Service
}

func NewAdminHandler(accounts *account.Service) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PATCH("/vendors/:vendor_id/approval", h.UpdateVendorApproval)
}

func (h *AdminHandler) UpdateVendorApproval(c *gin.Context) {
	reviewerID, ok := currentAccountID(c)
	if !ok {
		return
	}
	vendorID, ok := uuidParam(c, "vendor_id", "vendor id")
	if !ok {
		return
	}

	var req account.ApprovalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.accounts.UpdateApprovalStatus(c.Request.Context(), reviewerID, vendorID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vendor approval updated", resp)
}
