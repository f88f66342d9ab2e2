package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/server/http/dto"
	"github.com/polkiloo/procurement/internal/usecase"
)

// RecourseOrderHandler extends the shared order endpoints with bill uploads.
type RecourseOrderHandler struct {
	*OrderHandler[model.RecourseOrder, usecase.RecourseOrderInput]
	service RecourseOrderService
}

// NewRecourseOrderHandler constructs RecourseOrderHandler.
func NewRecourseOrderHandler(service RecourseOrderService) *RecourseOrderHandler {
	return &RecourseOrderHandler{
		OrderHandler: NewOrderHandler[model.RecourseOrder, usecase.RecourseOrderInput](service),
		service:      service,
	}
}

// AttachBill handles PUT /api/recourseUserOrder/bill/:id.
func (h *RecourseOrderHandler) AttachBill(c *gin.Context) {
	var req dto.BillRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.service.AttachBill(c.Request.Context(), c.Param("id"), req.BillFile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
