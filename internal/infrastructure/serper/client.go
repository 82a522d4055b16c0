package serper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domainsearch "jan-server/services/search-web-tool/internal/domain/search"
	"jan-server/services/search-web-tool/internal/infrastructure/metrics"
	"jan-server/services/search-web-tool/internal/infrastructure/observability"
	"jan-server/services/search-web-tool/utils/platformerrors"
)

const (
	DefaultBaseURL = "https://google.serper.dev"
	DefaultTimeout = 15 * time.Second
)

// ClientConfig holds the settings for the Serper client
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// Transport overrides the HTTP transport, mainly for tests
	Transport http.RoundTripper
}

// Client issues search requests against the Serper API
type Client struct {
	httpClient *resty.Client
	apiKey     string
	baseURL    string
}

var _ domainsearch.SearchClient = (*Client)(nil)

// StatusError is returned (wrapped) when Serper answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("serper returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a Serper client. It fails when no API key is configured.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, platformerrors.NewError(
			context.Background(),
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			"SERPER_API_KEY is not set",
			nil,
			"",
		)
	}

	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetHeader("User-Agent", "Jan-Search-Web-Tool/1.0").
		SetTimeout(timeout).
		SetRetryCount(0)
	if cfg.Transport != nil {
		httpClient.SetTransport(cfg.Transport)
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
	}, nil
}

// BuildPayload builds the Serper request body. Location and DateRange are
// only included when non-empty.
func BuildPayload(ctx context.Context, req domainsearch.SearchRequest) (map[string]any, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"q": req.Query,
	}
	if req.Location != "" {
		payload["gl"] = req.Location
	}
	if req.DateRange != "" {
		payload["tbs"] = "qdr:" + req.DateRange
	}
	return payload, nil
}

// Request POSTs the query to {baseURL}/{endpoint} and returns the decoded
// JSON object as is.
func (c *Client) Request(ctx context.Context, req domainsearch.SearchRequest, endpoint domainsearch.Endpoint) (map[string]any, error) {
	payload, err := BuildPayload(ctx, req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	ctx, span := observability.StartSpan(ctx, "serper.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("serper.endpoint", string(endpoint)),
			attribute.String("http.url", url),
			attribute.Bool("serper.location_set", req.Location != ""),
			attribute.Bool("serper.date_range_set", req.DateRange != ""),
		),
	)
	defer span.End()

	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordUpstreamRequest(string(endpoint), status, time.Since(startTime).Seconds())
	}()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		status = "error"
		errorType := platformerrors.ErrorTypeExternal
		if isTimeout(err) {
			status = "timeout"
			errorType = platformerrors.ErrorTypeTimeout
		}
		log.Error().Err(err).Str("service", "serper").Str("endpoint", url).Msg("failed to query Serper API")
		observability.RecordError(span, err)
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, errorType,
			"failed to query Serper API", err, "", map[string]any{"endpoint": string(endpoint)})
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if !resp.IsSuccess() {
		status = "error"
		statusErr := &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
		log.Error().Int("status", resp.StatusCode()).Str("service", "serper").Str("response", resp.String()).Msg("Serper API error")
		observability.RecordError(span, statusErr)
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"Serper API error", statusErr, "", map[string]any{"endpoint": string(endpoint), "status_code": resp.StatusCode()})
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		status = "error"
		log.Error().Err(err).Str("service", "serper").Str("endpoint", url).Msg("failed to decode Serper response")
		observability.RecordError(span, err)
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"failed to decode Serper response", err, "", map[string]any{"endpoint": string(endpoint)})
	}
	if body == nil {
		body = map[string]any{}
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
