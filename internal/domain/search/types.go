package search

import (
	"context"
	"fmt"
	"strings"

	"jan-server/services/search-web-tool/utils/platformerrors"
)

// Operation selects which Serper endpoint and result key a search uses
type Operation string

const (
	OperationNews Operation = "news"
	OperationWeb  Operation = "web"
)

const (
	ToolNameSearchNews = "search_news_tool"
	ToolNameSearchWeb  = "search_web_tool"

	// DefaultToolName is used when the run envelope omits tool_name
	DefaultToolName = ToolNameSearchNews
)

// Endpoint is the path segment of a Serper endpoint
type Endpoint string

const (
	EndpointNews   Endpoint = "news"
	EndpointSearch Endpoint = "search"
)

// Endpoint returns the upstream endpoint for the operation
func (o Operation) Endpoint() Endpoint {
	if o == OperationWeb {
		return EndpointSearch
	}
	return EndpointNews
}

// ResultKey returns the key of the result array in the upstream response
func (o Operation) ResultKey() string {
	if o == OperationWeb {
		return "organic"
	}
	return "news"
}

// ToolName returns the tool name under which the operation is exposed
func (o Operation) ToolName() string {
	if o == OperationWeb {
		return ToolNameSearchWeb
	}
	return ToolNameSearchNews
}

// ParseOperation resolves a tool name ("search_news_tool") or an operation
// name ("news") to an Operation.
func ParseOperation(ctx context.Context, name string) (Operation, error) {
	switch strings.TrimSpace(name) {
	case ToolNameSearchNews, string(OperationNews):
		return OperationNews, nil
	case ToolNameSearchWeb, string(OperationWeb):
		return OperationWeb, nil
	}
	return "", platformerrors.NewErrorWithContext(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeValidation,
		fmt.Sprintf("method %s not found", name),
		nil,
		"",
		map[string]any{"tool_name": name},
	)
}

// SearchRequest is a normalized search query. Empty Location and DateRange
// mean the filter is not sent upstream.
type SearchRequest struct {
	Operation Operation `json:"operation"`
	Query     string    `json:"query"`
	Location  string    `json:"location,omitempty"`  // Serper "gl" region code, e.g. "us"
	DateRange string    `json:"date_range,omitempty"` // h, d, w, m, y; sent as "qdr:<value>"
}

// Validate rejects requests that must never reach the upstream API
func (r SearchRequest) Validate(ctx context.Context) error {
	if strings.TrimSpace(r.Query) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "query cannot be empty", nil, "")
	}
	return nil
}

// Result is a single upstream result object, passed through unchanged
type Result map[string]any

// NewsItem is the typed view of a news result
type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// WebItem is the typed view of an organic web result
type WebItem struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

func (r Result) String(key string) string {
	if val, ok := r[key].(string); ok {
		return val
	}
	return ""
}

func (r Result) NewsItem() NewsItem {
	return NewsItem{
		Title:   r.String("title"),
		Link:    r.String("link"),
		Snippet: r.String("snippet"),
		Source:  r.String("source"),
		Date:    r.String("date"),
	}
}

func (r Result) WebItem() WebItem {
	item := WebItem{
		Title:   r.String("title"),
		Link:    r.String("link"),
		Snippet: r.String("snippet"),
	}
	// JSON numbers decode as float64
	switch pos := r["position"].(type) {
	case float64:
		item.Position = int(pos)
	case int:
		item.Position = pos
	}
	return item
}
