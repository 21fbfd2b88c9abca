package handler

import (
	"net/http"

	"flashdeals/internal/usecase/offer"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	service *offer.Service
}

func NewOfferHandler(service *offer.Service) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	offers := router.Group("/offers")
	{
		offers.GET("", h.List)
		offers.GET("/hot", h.Hot)
		offers.GET("/categories", h.Categories)
		offers.GET("/:id", h.Get)
	}
}

// RegisterVendorRoutes expects router to already require a vendor bearer token
func (h *OfferHandler) RegisterVendorRoutes(router *gin.RouterGroup) {
	offers := router.Group("/offers")
	{
		offers.POST("", h.Create)
		offers.PUT("/:id", h.Update)
		offers.DELETE("/:id", h.Delete)
	}
}

func (h *OfferHandler) List(c *gin.Context) {
	var query offer.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offers retrieved successfully", resp)
}

func (h *OfferHandler) Hot(c *gin.Context) {
	var query offer.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.Hot(c.Request.Context(), &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hot offers retrieved successfully", resp)
}

func (h *OfferHandler) Categories(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", h.service.Categories())
}

func (h *OfferHandler) Get(c *gin.Context) {
	offerID, ok := uuidParam(c, "id", "offer id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), offerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer retrieved successfully", resp)
}

func (h *OfferHandler) Create(c *gin.Context) {
	vendorID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req offer.CreateOfferRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), vendorID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Offer created successfully", resp)
}

func (h *OfferHandler) Update(c *gin.Context) {
	vendorID, ok := currentAccountID(c)
	if !ok {
		return
	}
	offerID, ok := uuidParam(c, "id", "offer id")
	if !ok {
		return
	}

	var req offer.UpdateOfferRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), vendorID, offerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer updated successfully", resp)
}

func (h *OfferHandler) Delete(c *gin.Context) {
	vendorID, ok := currentAccountID(c)
	if !ok {
		return
	}
	offerID, ok := uuidParam(c, "id", "offer id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), vendorID, offerID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer deleted successfully", nil)
}
