package whatsapp

import (
	"context"

	"go.uber.org/zap"

	"github.com/monasabatlabs/monasabat/internal/notification/domain"
)

// Provider is the WhatsApp channel. The transport is a logging stub;
// a Twilio/360dialog client slots in behind the same interface.
type Provider struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Provider {
	return &Provider{log: log.Named("notification.whatsapp")}
}

func (p *Provider) Send(ctx context.Context, n domain.Notification) error {
	p.log.Info("sending whatsapp notification",
		zap.String("phone", n.Phone),
		zap.String("template", n.TemplateKey),
		zap.String("locale", n.Locale),
		zap.Any("args", n.Args),
	)
	return nil
}
