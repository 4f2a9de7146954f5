package domain

import "context"

// Template keys for outbound supplier/client notifications.
const (
	TemplateOTPCode                = "auth.otp_code"
	TemplateQuotaWarning           = "quota.warning"
	TemplateQuotaLocked            = "quota.locked"
	TemplateSubscriptionActivated  = "subscription.activated"
	TemplateContactRequestAccepted = "contact_request.accepted"
	TemplateContactRequestRejected = "contact_request.rejected"
)

type Notification struct {
	Phone       string
	TemplateKey string
	Locale      string
	Args        []any
}

// Sender delivers one notification over a concrete channel (WhatsApp).
// Delivery is best-effort: callers must never let a send failure affect
// the triggering business operation.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
