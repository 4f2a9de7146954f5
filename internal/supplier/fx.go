package supplier

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/supplier/repository"
	"github.com/monasabatlabs/monasabat/internal/supplier/service"
)

var Module = fx.Module("supplier",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
