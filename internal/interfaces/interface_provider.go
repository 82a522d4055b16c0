package interfaces

import (
	"github.com/google/wire"

	"jan-server/services/search-web-tool/internal/interfaces/httpserver"
)

// InterfacesProvider provides all interface layer dependencies
var InterfacesProvider = wire.NewSet(
	httpserver.NewHTTPServer,
)
