package model

import (
	"encoding/json"
	"time"
)

// OutboxKind names the side effect a message triggers.
type OutboxKind string

const (
	OutboxNotification OutboxKind = "notification.create"
	OutboxSMS          OutboxKind = "sms.send"
)

// OutboxStatus tracks delivery of an outbox message.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxDone       OutboxStatus = "done"
	OutboxFailed     OutboxStatus = "failed"
)

// OutboxMessage is a side effect committed together with a primary write.
type OutboxMessage struct {
	ID          int64
	Kind        OutboxKind
	Payload     json.RawMessage
	Status      OutboxStatus
	Attempts    int
	LastError   string
	AvailableAt time.Time
	CreatedAt   time.Time
}

// NotificationPayload is the body of an OutboxNotification message.
type NotificationPayload struct {
	Text string `json:"text"`
}

// SMSPayload is the body of an OutboxSMS message.
type SMSPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewNotificationMessage builds an outbox message creating a notification.
func NewNotificationMessage(text string) OutboxMessage {
	payload, _ := json.Marshal(NotificationPayload{Text: text})
	return OutboxMessage{Kind: OutboxNotification, Payload: payload}
}

// NewSMSMessage builds an outbox message sending an SMS.
func NewSMSMessage(phone, message string) OutboxMessage {
	payload, _ := json.Marshal(SMSPayload{Phone: phone, Message: message})
	return OutboxMessage{Kind: OutboxSMS, Payload: payload}
}
