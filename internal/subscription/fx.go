package subscription

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/subscription/repository"
	"github.com/monasabatlabs/monasabat/internal/subscription/service"
)

var Module = fx.Module("subscription",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
