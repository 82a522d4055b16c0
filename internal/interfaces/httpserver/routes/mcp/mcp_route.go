package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"jan-server/services/search-web-tool/internal/infrastructure/deployment"
	"jan-server/services/search-web-tool/internal/interfaces/httpserver/responses"
	"jan-server/services/search-web-tool/utils/platformerrors"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

type MCPRoute struct {
	searchMCP   *SearchMCP
	mcpServer   *mcp.Server
	httpHandler http.Handler
}

// NewServer builds the MCP server with the search tools registered
func NewServer(searchMCP *SearchMCP, descriptor *deployment.Descriptor) *mcp.Server {
	if descriptor == nil {
		descriptor = deployment.Default()
	}
	impl := &mcp.Implementation{
		Name:    descriptor.Name,
		Version: descriptor.Version,
	}
	server := mcp.NewServer(impl, nil)
	searchMCP.RegisterTools(server)
	return server
}

func NewMCPRoute(searchMCP *SearchMCP, descriptor *deployment.Descriptor) *MCPRoute {
	server := NewServer(searchMCP, descriptor)

	return &MCPRoute{
		searchMCP: searchMCP,
		mcpServer: server,
		httpHandler: mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{Stateless: true}),
	}
}

func (route *MCPRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		ExtractToolTracking(),
		route.serveMCP,
	)
}

// serveMCP streams Model Context Protocol responses using the underlying MCP server.
// @Summary MCP endpoint for search tools
// @Description Handles Model Context Protocol (MCP) requests over HTTP. Supports initialize, ping, tools/list and tools/call.
// @Description
// @Description **Available Tools:**
// @Description - `search_news_tool`: news search (params: query, location, date) returning title, link, snippet, source, date.
// @Description - `search_web_tool`: web search (params: query, location, date) returning the organic results.
// @Tags MCP API
// @Accept json
// @Produce text/event-stream
// @Param request body object true "MCP JSON-RPC request payload (e.g., {\"jsonrpc\":\"2.0\",\"method\":\"tools/list\",\"id\":1})"
// @Success 200 {string} string "Streamed MCP response in SSE format"
// @Failure 400 {object} responses.ErrorResponse "Invalid MCP request payload or unsupported method"
// @Router /v1/mcp [post]
func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// Force acceptable content types for go-sdk streamable handler even if client omits Accept.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read MCP request body", "b1c1e0a2-5f43-4e8e-8d0c-6a7f3e2b9d14")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "empty MCP request body", "7d2e4f61-0b9a-4c3d-a8e5-2f1b6c9d0e37")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid MCP request payload", "c4a9f2d8-3e71-4b05-9f6a-8d2c1e7b3a50")
			return
		}

		if payload.Method == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "missing method field in MCP request", "e8f1a3b7-6c24-4d9e-b0a5-7c3d2e1f9b86")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unsupported MCP method: "+payload.Method, "5a0b7c3e-9d18-4f26-8e4b-1c6f2a9d7e03")
			return
		}

		reqCtx.Next()
	}
}
