package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/server/http/dto"
)

// NotificationHandler exposes the admin notification feed.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req dto.NotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.facade.CreateNotification(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.facade.Notifications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	n, err := h.facade.Notification(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteNotification(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "notification")
}

// MarkShown handles PUT /api/notifications/show.
func (h *NotificationHandler) MarkShown(c *gin.Context) {
	modified, err := h.facade.MarkNotificationsShown(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ShownResponse{Modified: modified})
}
