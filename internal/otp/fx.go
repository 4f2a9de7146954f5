package otp

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/otp/service"
)

var Module = fx.Module("otp",
	fx.Provide(service.NewService),
)
