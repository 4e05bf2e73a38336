package auth

import (
	"github.com/klimatech/storefront/internal/auth/repository"
	"github.com/klimatech/storefront/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
