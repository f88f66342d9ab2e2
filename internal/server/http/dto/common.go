package dto

import "github.com/polkiloo/procurement/internal/domain/model"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// MessageResponse acknowledges operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusRequest changes the lifecycle status of an order.
type StatusRequest struct {
	StatusOrder model.OrderStatus `json:"statusOrder"`
}

// BillRequest attaches a bill file to a recourse order.
type BillRequest struct {
	BillFile *model.AttachedFile `json:"billFile"`
}

// NotificationRequest creates an admin notification.
type NotificationRequest struct {
	Text string `json:"text"`
}

// ShownResponse reports how many notifications were marked as shown.
type ShownResponse struct {
	Modified int64 `json:"modified"`
}
