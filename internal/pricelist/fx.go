package pricelist

import (
	"github.com/klimatech/storefront/internal/pricelist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricelist.service",
	fx.Provide(service.New),
)
