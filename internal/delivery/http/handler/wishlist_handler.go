package handler

import (
	"net/http"

	"flashdeals/internal/usecase/wishlist"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	service *wishlist.Service
}

func NewWishlistHandler(service *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{service: service}
}

func (h *WishlistHandler) RegisterRoutes(router *gin.RouterGroup) {
	wl := router.Group("/wishlist")
	{
		wl.GET("", h.List)
		wl.GET("/status", h.Status)
		wl.POST("/:offer_id/toggle", h.Toggle)
	}
}

func (h *WishlistHandler) Toggle(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	offerID, ok := uuidParam(c, "offer_id", "offer id")
	if !ok {
		return
	}

	resp, err := h.service.Toggle(c.Request.Context(), accountID, offerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := "Removed from wishlist"
	if resp.Wishlisted {
		message = "Added to wishlist"
	}
	utils.SuccessResponse(c, http.StatusOK, message, resp)
}

func (h *WishlistHandler) Status(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	resp, err := h.service.Status(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Wishlist status retrieved", resp)
}

func (h *WishlistHandler) List(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Wishlist retrieved successfully", resp)
}
