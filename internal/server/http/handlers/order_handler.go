package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/server/http/dto"
)

// OrderHandler serves the endpoints shared by every order collection.
type OrderHandler[T, I any] struct {
	service OrderService[T, I]
}

// NewOrderHandler builds OrderHandler for one collection.
func NewOrderHandler[T, I any](service OrderService[T, I]) *OrderHandler[T, I] {
	return &OrderHandler[T, I]{service: service}
}

// Create accepts a new order. Anonymous submissions are allowed.
func (h *OrderHandler[T, I]) Create(c *gin.Context) {
	var in I
	if !bindJSON(c, &in) {
		return
	}

	order, err := h.service.Create(c.Request.Context(), in, optionalIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List returns a filtered page of the collection.
func (h *OrderHandler[T, I]) List(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter, CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListByContractor returns the orders bound to the user in the path.
func (h *OrderHandler[T, I]) ListByContractor(c *gin.Context) {
	filter, err := orderFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.service.ListByContractor(c.Request.Context(), c.Param("id"), filter, CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns a single order.
func (h *OrderHandler[T, I]) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus overwrites the lifecycle status.
func (h *OrderHandler[T, I]) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.StatusOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
