package booking

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/booking/repository"
	"github.com/monasabatlabs/monasabat/internal/booking/service"
)

var Module = fx.Module("booking",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
