package service

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/monasabatlabs/monasabat/internal/notification/domain"
	"github.com/monasabatlabs/monasabat/internal/observability"
)

const sendTimeout = 10 * time.Second

// Dispatcher fans notifications out without blocking the caller. Send
// failures are logged and counted, never propagated: a supplier's lock
// state must not depend on notification delivery.
type Dispatcher struct {
	sender  domain.Sender
	log     *zap.Logger
	metrics *observability.Metrics
}

type DispatcherParam struct {
	fx.In

	Sender  domain.Sender
	Log     *zap.Logger
	Metrics *observability.Metrics
}

func NewDispatcher(p DispatcherParam) *Dispatcher {
	return &Dispatcher{
		sender:  p.Sender,
		log:     p.Log.Named("notification.dispatcher"),
		metrics: p.Metrics,
	}
}

func (d *Dispatcher) Dispatch(n domain.Notification) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("notification send panicked", zap.Any("panic", r))
				d.metrics.NotificationsSent.WithLabelValues("panic").Inc()
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.sender.Send(ctx, n); err != nil {
			d.log.Error("notification send failed",
				zap.Error(err),
				zap.String("template", n.TemplateKey),
				zap.String("phone", n.Phone),
			)
			d.metrics.NotificationsSent.WithLabelValues("failure").Inc()
			return
		}
		d.metrics.NotificationsSent.WithLabelValues("success").Inc()
	}()
}
