package eventitem

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/eventitem/repository"
	"github.com/monasabatlabs/monasabat/internal/eventitem/service"
)

var Module = fx.Module("eventitem",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
