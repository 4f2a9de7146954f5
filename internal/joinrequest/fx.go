package joinrequest

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/joinrequest/repository"
	"github.com/monasabatlabs/monasabat/internal/joinrequest/service"
)

var Module = fx.Module("joinrequest",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
