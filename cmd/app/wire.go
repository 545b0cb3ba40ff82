//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/vibecast/internal/bootstrap"
	"github.com/yanqian/vibecast/internal/domain/session"
	"github.com/yanqian/vibecast/internal/infra/config"
	httpiface "github.com/yanqian/vibecast/internal/interface/http"
	"github.com/yanqian/vibecast/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.DomainSet,
		bootstrap.ProvideSessionRegistry,
		session.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
