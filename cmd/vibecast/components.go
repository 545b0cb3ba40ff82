package main

import (
	"github.com/yanqian/vibecast/internal/domain/session"
	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/domain/weather"
)

// components is what the terminal session is built from.
type components struct {
	weather    weather.Service
	advisor    stylist.Service
	sessionCfg session.Config
}

func newComponents(weatherSvc weather.Service, advisor stylist.Service, sessionCfg session.Config) components {
	return components{weather: weatherSvc, advisor: advisor, sessionCfg: sessionCfg}
}
