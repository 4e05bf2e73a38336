package order

import (
	"github.com/klimatech/storefront/internal/order/repository"
	"github.com/klimatech/storefront/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
