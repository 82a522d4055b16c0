package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/search-web-tool/utils/platformerrors"
)

type fakeClient struct {
	body      map[string]any
	err       error
	calls     int
	endpoints []Endpoint
	requests  []SearchRequest
}

func (f *fakeClient) Request(_ context.Context, req SearchRequest, endpoint Endpoint) (map[string]any, error) {
	f.calls++
	f.endpoints = append(f.endpoints, endpoint)
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func TestSearchNews_ReturnsNewsArray(t *testing.T) {
	client := &fakeClient{body: map[string]any{
		"news": []any{
			map[string]any{"title": "A", "link": "l", "snippet": "s", "source": "src", "date": "2024-01-01"},
		},
	}}
	svc := NewSearchService(client)

	results, err := svc.SearchNews(context.Background(), SearchRequest{Query: "golang"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Result{"title": "A", "link": "l", "snippet": "s", "source": "src", "date": "2024-01-01"}, results[0])
	assert.Equal(t, NewsItem{Title: "A", Link: "l", Snippet: "s", Source: "src", Date: "2024-01-01"}, results[0].NewsItem())
	assert.Equal(t, []Endpoint{EndpointNews}, client.endpoints)
	assert.Equal(t, OperationNews, client.requests[0].Operation)
}

func TestSearchNews_MissingKeyReturnsEmpty(t *testing.T) {
	svc := NewSearchService(&fakeClient{body: map[string]any{}})

	results, err := svc.SearchNews(context.Background(), SearchRequest{Query: "golang"})

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchWeb_ReturnsOrganicInUpstreamOrder(t *testing.T) {
	client := &fakeClient{body: map[string]any{
		"organic": []any{
			map[string]any{"title": "second", "link": "b", "position": float64(2)},
			map[string]any{"title": "first", "link": "a", "position": float64(1)},
			map[string]any{"title": "second", "link": "b", "position": float64(2)},
		},
		"news": []any{map[string]any{"title": "ignored"}},
	}}
	svc := NewSearchService(client)

	results, err := svc.SearchWeb(context.Background(), SearchRequest{Query: "golang"})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "second", results[0].String("title"))
	assert.Equal(t, "first", results[1].String("title"))
	assert.Equal(t, WebItem{Title: "first", Link: "a", Position: 1}, results[1].WebItem())
	assert.Equal(t, []Endpoint{EndpointSearch}, client.endpoints)
}

func TestSearchWeb_MissingOrganicReturnsEmpty(t *testing.T) {
	svc := NewSearchService(&fakeClient{body: map[string]any{"searchParameters": map[string]any{"q": "x"}}})

	results, err := svc.SearchWeb(context.Background(), SearchRequest{Query: "x"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQueryFailsBeforeRequest(t *testing.T) {
	client := &fakeClient{body: map[string]any{}}
	svc := NewSearchService(client)
	ctx := context.Background()

	for _, query := range []string{"", "   "} {
		_, err := svc.SearchNews(ctx, SearchRequest{Query: query})
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))

		_, err = svc.SearchWeb(ctx, SearchRequest{Query: query})
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
	}

	assert.Equal(t, 0, client.calls)
}

func TestSearch_UpstreamErrorPropagates(t *testing.T) {
	cause := errors.New("connection refused")
	upstreamErr := platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "serper request failed", cause, "")
	client := &fakeClient{err: upstreamErr}
	svc := NewSearchService(client)

	results, err := svc.SearchWeb(context.Background(), SearchRequest{Query: "golang"})

	assert.Nil(t, results)
	assert.Same(t, upstreamErr, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, client.calls)
}

func TestSearch_EachCallIssuesOneRequest(t *testing.T) {
	client := &fakeClient{body: map[string]any{"news": []any{}}}
	svc := NewSearchService(client)
	req := SearchRequest{Query: "golang", Location: "us", DateRange: "d"}

	_, err := svc.SearchNews(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.SearchNews(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
}

func TestRun_Dispatch(t *testing.T) {
	tests := []struct {
		toolName string
		op       Operation
		endpoint Endpoint
	}{
		{ToolNameSearchNews, OperationNews, EndpointNews},
		{ToolNameSearchWeb, OperationWeb, EndpointSearch},
		{"news", OperationNews, EndpointNews},
		{"web", OperationWeb, EndpointSearch},
	}

	for _, tt := range tests {
		t.Run(tt.toolName, func(t *testing.T) {
			client := &fakeClient{body: map[string]any{}}
			svc := NewSearchService(client)

			op, results, err := svc.Run(context.Background(), tt.toolName, SearchRequest{Query: "golang"})

			require.NoError(t, err)
			assert.Equal(t, tt.op, op)
			assert.Empty(t, results)
			assert.Equal(t, []Endpoint{tt.endpoint}, client.endpoints)
		})
	}
}

func TestRun_UnknownToolName(t *testing.T) {
	client := &fakeClient{body: map[string]any{}}
	svc := NewSearchService(client)

	_, _, err := svc.Run(context.Background(), "unknown_tool", SearchRequest{Query: "golang"})

	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "unknown_tool")
	assert.Equal(t, 0, client.calls)
}

func TestExtractResults_Permissive(t *testing.T) {
	assert.Empty(t, extractResults(map[string]any{"news": "not an array"}, "news"))
	assert.Empty(t, extractResults(map[string]any{"news": nil}, "news"))
	assert.Empty(t, extractResults(nil, "news"))

	results := extractResults(map[string]any{"news": []any{"junk", map[string]any{"title": "kept"}, 42}}, "news")
	require.Len(t, results, 1)
	assert.Equal(t, "kept", results[0].String("title"))
}

func TestOperationMapping(t *testing.T) {
	assert.Equal(t, EndpointNews, OperationNews.Endpoint())
	assert.Equal(t, "news", OperationNews.ResultKey())
	assert.Equal(t, ToolNameSearchNews, OperationNews.ToolName())

	assert.Equal(t, EndpointSearch, OperationWeb.Endpoint())
	assert.Equal(t, "organic", OperationWeb.ResultKey())
	assert.Equal(t, ToolNameSearchWeb, OperationWeb.ToolName())
}
