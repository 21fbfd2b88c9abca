package handler

import (
	"net/http"

	"flashdeals/internal/usecase/ticket"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service *ticket.Service
}

func NewTicketHandler(service *ticket.Service) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/tickets")
	{
		tickets.POST("", h.Create)
		tickets.GET("", h.ListMine)
	}
}

func (h *TicketHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.PATCH("/tickets/:id/status", h.UpdateStatus)
}

func (h *TicketHandler) Create(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req ticket.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), accountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Ticket created successfully", resp)
}

func (h *TicketHandler) ListMine(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets retrieved successfully", resp)
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	staffID, ok := currentAccountID(c)
	if !ok {
		return
	}
	ticketID, ok := uuidParam(c, "id", "ticket id")
	if !ok {
		return
	}

	var req ticket.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), staffID, ticketID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated", resp)
}
