package contact

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/contact/repository"
	"github.com/monasabatlabs/monasabat/internal/contact/service"
)

var Module = fx.Module("contact",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
