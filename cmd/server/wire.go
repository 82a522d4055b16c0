//go:build wireinject

package main

import (
	"github.com/google/wire"

	"jan-server/services/search-web-tool/internal/domain"
	"jan-server/services/search-web-tool/internal/infrastructure"
	"jan-server/services/search-web-tool/internal/interfaces"
	"jan-server/services/search-web-tool/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		routes.RoutesProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
