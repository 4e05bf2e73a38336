package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/klimatech/storefront/internal/config"
	"github.com/klimatech/storefront/internal/migration"
	"github.com/klimatech/storefront/internal/server"
	"github.com/klimatech/storefront/pkg/db"
	"github.com/klimatech/storefront/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
