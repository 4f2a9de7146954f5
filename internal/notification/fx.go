package notification

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/notification/domain"
	"github.com/monasabatlabs/monasabat/internal/notification/provider/whatsapp"
	"github.com/monasabatlabs/monasabat/internal/notification/service"
)

var Module = fx.Module("notification",
	fx.Provide(
		fx.Annotate(whatsapp.New, fx.As(new(domain.Sender))),
		service.NewDispatcher,
	),
)
