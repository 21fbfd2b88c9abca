package handler

import (
	"net/http"

	"flashdeals/internal/usecase/account"
	"flashdeals/internal/usecase/offer"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	accounts *account.Service
	offers   *offer.Service
}

func NewVendorHandler(accounts *account.Service, offers *offer.Service) *VendorHandler {
	return &VendorHandler{accounts: accounts, offers: offers}
}

func (h *VendorHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/vendors/:vendor_id/offers", h.ListOffers)
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/vendors/:vendor_id")
	{
		vendors.POST("/application", h.SubmitApplication)
		vendors.PUT("/store", h.UpdateStore)
	}
}

func (h *VendorHandler) ListOffers(c *gin.Context) {
	vendorID, ok := uuidParam(c, "vendor_id", "vendor id")
	if !ok {
		return
	}

	resp, err := h.offers.ListByVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offers retrieved successfully", resp)
}

func (h *VendorHandler) SubmitApplication(c *gin.Context) {
	callerID, ok := currentAccountID(c)
	if !ok {
		return
	}
	vendorID, ok := uuidParam(c, "vendor_id", "vendor id")
	if !ok {
		return
	}

	var req account.VendorApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.accounts.SubmitVendorApplication(c.Request.Context(), callerID, vendorID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vendor application submitted", resp)
}

func (h *VendorHandler) UpdateStore(c *gin.Context) {
	callerID, ok := currentAccountID(c)
	if !ok {
		return
	}
	vendorID, ok := uuidParam(c, "vendor_id", "vendor id")
	if !ok {
		return
	}

	var req account.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.accounts.UpdateStoreDetails(c.Request.Context(), callerID, vendorID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Store details updated", resp)
}
