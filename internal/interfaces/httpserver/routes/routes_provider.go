package routes

import (
	"github.com/google/wire"

	"jan-server/services/search-web-tool/internal/interfaces/httpserver/routes/mcp"
	"jan-server/services/search-web-tool/internal/interfaces/httpserver/routes/tools"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	mcp.NewSearchMCP,
	mcp.NewMCPRoute,
	tools.NewRunRoute,
)
