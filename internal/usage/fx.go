package usage

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/usage/repository"
)

var Module = fx.Module("usage",
	fx.Provide(repository.Provide),
)
