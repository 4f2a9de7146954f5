package admin

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/admin/service"
)

var Module = fx.Module("admin",
	fx.Provide(service.NewService),
)
