package blog

import (
	"github.com/klimatech/storefront/internal/blog/repository"
	"github.com/klimatech/storefront/internal/blog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("blog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
