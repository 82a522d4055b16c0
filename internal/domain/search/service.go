package search

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jan-server/services/search-web-tool/internal/infrastructure/metrics"
	"jan-server/services/search-web-tool/internal/infrastructure/observability"
	"jan-server/services/search-web-tool/utils/platformerrors"
)

// SearchClient issues a single request to the upstream search provider and
// returns the decoded response body without interpreting it.
type SearchClient interface {
	Request(ctx context.Context, req SearchRequest, endpoint Endpoint) (map[string]any, error)
}

// SearchService runs news and web searches on top of a SearchClient.
// Every call issues exactly one upstream request.
type SearchService struct {
	client SearchClient
}

func NewSearchService(client SearchClient) *SearchService {
	return &SearchService{
		client: client,
	}
}

// SearchNews returns the upstream "news" array, or an empty slice when absent
func (s *SearchService) SearchNews(ctx context.Context, req SearchRequest) ([]Result, error) {
	req.Operation = OperationNews
	return s.search(ctx, req)
}

// SearchWeb returns the upstream "organic" array, or an empty slice when absent
func (s *SearchService) SearchWeb(ctx context.Context, req SearchRequest) ([]Result, error) {
	req.Operation = OperationWeb
	return s.search(ctx, req)
}

// Run resolves toolName to an operation and executes it
func (s *SearchService) Run(ctx context.Context, toolName string, req SearchRequest) (Operation, []Result, error) {
	op, err := ParseOperation(ctx, toolName)
	if err != nil {
		log.Warn().Str("tool_name", toolName).Msg("unknown search tool requested")
		return "", nil, err
	}

	var results []Result
	switch op {
	case OperationNews:
		results, err = s.SearchNews(ctx, req)
	case OperationWeb:
		results, err = s.SearchWeb(ctx, req)
	}
	return op, results, err
}

func (s *SearchService) search(ctx context.Context, req SearchRequest) ([]Result, error) {
	toolName := req.Operation.ToolName()
	if err := req.Validate(ctx); err != nil {
		metrics.RecordToolCall(toolName, "invalid", 0, 0)
		return nil, err
	}

	log.Info().
		Str("tool", toolName).
		Str("query", observability.SanitizeQuery(req.Query)).
		Str("location", req.Location).
		Str("date_range", req.DateRange).
		Msg("running search")

	ctx, span := observability.StartSpan(ctx, "search."+string(req.Operation),
		trace.WithAttributes(attribute.String("tool.name", toolName)),
	)
	defer span.End()

	startTime := time.Now()
	body, err := s.client.Request(ctx, req, req.Operation.Endpoint())
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordToolCall(toolName, "error", time.Since(startTime).Seconds(), 0)
		log.Error().Err(err).Str("tool", toolName).Str("query", observability.SanitizeQuery(req.Query)).Msg("search request failed")
		return nil, err
	}

	results := extractResults(body, req.Operation.ResultKey())
	span.SetAttributes(attribute.Int("search.result_count", len(results)))
	metrics.RecordToolCall(toolName, "success", time.Since(startTime).Seconds(), len(results))
	log.Debug().
		Str("tool", toolName).
		Str("query", observability.SanitizeQuery(req.Query)).
		Int("result_count", len(results)).
		Msg("search completed")

	return results, nil
}

// extractResults reads body[key] as an array of objects. A missing or
// non-array key yields an empty slice; non-object entries are skipped.
func extractResults(body map[string]any, key string) []Result {
	results := make([]Result, 0)

	raw, ok := body[key]
	if !ok || raw == nil {
		return results
	}

	items, ok := raw.([]any)
	if !ok {
		log.Warn().Str("key", key).Msg("upstream result field is not an array, returning no results")
		return results
	}

	for idx, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			log.Debug().Str("key", key).Int("index", idx).Msg("skipping non-object result entry")
			continue
		}
		results = append(results, Result(obj))
	}
	return results
}

// IsInvalidArgument reports whether err was caused by caller input
func IsInvalidArgument(err error) bool {
	return platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation)
}
