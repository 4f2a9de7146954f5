package quota

import (
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/quota/domain"
)

var Module = fx.Module("quota",
	fx.Provide(domain.NewPolicy),
)
