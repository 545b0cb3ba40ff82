//go:build wireinject
// +build wireinject

package main

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/yanqian/vibecast/internal/bootstrap"
	"github.com/yanqian/vibecast/internal/infra/config"
)

func initializeComponents(cfg *config.Config, logger *slog.Logger) components {
	wire.Build(bootstrap.DomainSet, newComponents)
	return components{}
}
