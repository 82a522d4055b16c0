package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	domainsearch "jan-server/services/search-web-tool/internal/domain/search"
	"jan-server/services/search-web-tool/internal/infrastructure/deployment"
	"jan-server/services/search-web-tool/internal/infrastructure/observability"
	"jan-server/services/search-web-tool/utils/platformerrors"
)

const (
	defaultNewsDescription = "Search recent news articles for a query through the Serper API. Returns title, link, snippet, source and date for each article."
	defaultWebDescription  = "Search the web for a query through the Serper API. Returns the organic results (title, link, snippet, position)."
)

// SearchToolArgs defines the arguments shared by search_news_tool and search_web_tool
type SearchToolArgs struct {
	Query    string `json:"query" jsonschema:"Search query string"`
	Location string `json:"location,omitempty" jsonschema:"Optional region code in ISO 3166-1 alpha-2 format such as us or vn"`
	Date     string `json:"date,omitempty" jsonschema:"Optional recency filter: h (past hour), d (past day), w (past week), m (past month), y (past year)"`
	// Context passthrough (ignored by handler but allowed for validation)
	ToolCallID     string `json:"tool_call_id,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
}

type searchToolPayload struct {
	ToolName string                `json:"tool_name"`
	Query    string                `json:"query"`
	Count    int                   `json:"count"`
	Results  []domainsearch.Result `json:"results"`
	Error    string                `json:"error,omitempty"`
}

// SearchMCP registers the news and web search tools
type SearchMCP struct {
	searchService *domainsearch.SearchService
	descriptor    *deployment.Descriptor
}

func NewSearchMCP(searchService *domainsearch.SearchService, descriptor *deployment.Descriptor) *SearchMCP {
	return &SearchMCP{
		searchService: searchService,
		descriptor:    descriptor,
	}
}

// RegisterTools registers both search tools with the MCP server
func (s *SearchMCP) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        domainsearch.ToolNameSearchNews,
		Description: s.descriptor.ToolDescription(domainsearch.ToolNameSearchNews, defaultNewsDescription),
	}, s.handler(domainsearch.OperationNews))

	mcp.AddTool(server, &mcp.Tool{
		Name:        domainsearch.ToolNameSearchWeb,
		Description: s.descriptor.ToolDescription(domainsearch.ToolNameSearchWeb, defaultWebDescription),
	}, s.handler(domainsearch.OperationWeb))
}

func (s *SearchMCP) handler(op domainsearch.Operation) mcp.ToolHandlerFor[SearchToolArgs, searchToolPayload] {
	toolName := op.ToolName()

	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchToolArgs) (*mcp.CallToolResult, searchToolPayload, error) {
		tracking, trackingEnabled := GetToolTracking(ctx)
		log.Info().
			Str("tool", toolName).
			Str("tool_call_id", firstNonEmpty(input.ToolCallID, tracking.ToolCallID)).
			Str("conversation_id", firstNonEmpty(input.ConversationID, tracking.ConversationID)).
			Str("request_id", input.RequestID).
			Str("user_id", observability.SanitizeID(input.UserID)).
			Bool("tracking_enabled", trackingEnabled).
			Msg("MCP tool call received")

		searchReq := domainsearch.SearchRequest{
			Query:     input.Query,
			Location:  input.Location,
			DateRange: input.Date,
		}

		var (
			results []domainsearch.Result
			err     error
		)
		switch op {
		case domainsearch.OperationWeb:
			results, err = s.searchService.SearchWeb(ctx, searchReq)
		default:
			results, err = s.searchService.SearchNews(ctx, searchReq)
		}

		payload := searchToolPayload{
			ToolName: toolName,
			Query:    input.Query,
			Count:    len(results),
			Results:  results,
		}
		if payload.Results == nil {
			payload.Results = []domainsearch.Result{}
		}

		if err != nil {
			log.Warn().Err(err).Str("tool", toolName).Str("query", observability.SanitizeQuery(input.Query)).Msg("search tool failed")
			payload.Error = toolErrorMessage(err)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: payload.Error}},
				IsError: true,
			}, payload, nil
		}

		return nil, payload, nil
	}
}

func toolErrorMessage(err error) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		return string(platformErr.Type) + ": " + platformErr.Message
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
