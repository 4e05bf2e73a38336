package providers

import (
	"github.com/klimatech/storefront/internal/providers/email"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
)
