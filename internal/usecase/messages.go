package usecase

import (
	"fmt"

	"github.com/polkiloo/procurement/internal/domain/model"
)

var kindTitles = map[model.OrderKind]string{
	model.OrderKindMaterial:      "material order",
	model.OrderKindFinance:       "finance request",
	model.OrderKindQualification: "qualification request",
	model.OrderKindRecourse:      "recourse order",
}

func otpMessage(code string) string {
	return fmt.Sprintf("Your verification code is %s", code)
}

func newOrderNotice(kind model.OrderKind) model.OutboxMessage {
	return model.NewNotificationMessage(fmt.Sprintf("A new %s was created", kindTitles[kind]))
}

func orderReceivedSMS(phone string) model.OutboxMessage {
	return model.NewSMSMessage(phone, "Your order has been received. We will review it, thank you for your trust.")
}

var statusTemplates = map[model.OrderStatus]string{
	model.OrderStatusPending:       "Your %s %q is under review. We will contact you soon.",
	model.OrderStatusAccepted:      "Your %s %q has been accepted. You can now proceed with the next steps.",
	model.OrderStatusNotAccepted:   "We are sorry, your %s %q has been rejected. Please contact support for details.",
	model.OrderStatusInvoiceIssued: "An invoice has been issued for your %s %q. Please complete the payment to continue.",
	model.OrderStatusShipped:       "Your %s %q has been shipped and will be delivered soon.",
	model.OrderStatusDelivered:     "Your %s %q has been delivered successfully.",
}

func statusSMS(kind model.OrderKind, phone, name string, status model.OrderStatus) model.OutboxMessage {
	tmpl, ok := statusTemplates[status]
	if !ok {
		return model.NewSMSMessage(phone, fmt.Sprintf("The status of your %s %q changed to %q", kindTitles[kind], name, status))
	}
	return model.NewSMSMessage(phone, fmt.Sprintf(tmpl, kindTitles[kind], name))
}
