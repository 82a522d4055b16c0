package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRecordToolCall(t *testing.T) {
	RecordToolCall("search_web_tool", "success", 0.2, 3)
	RecordToolCall("search_news_tool", "", 0, 0)

	body := scrape(t)
	assert.Contains(t, body, `jan_search_tool_tool_calls_total{status="success",tool_name="search_web_tool"}`)
	assert.Contains(t, body, `jan_search_tool_tool_calls_total{status="unknown",tool_name="search_news_tool"}`)
	assert.Contains(t, body, `jan_search_tool_tool_results_total{tool_name="search_web_tool"}`)
	assert.NotContains(t, body, `jan_search_tool_tool_results_total{tool_name="search_news_tool"}`)
}

func TestRecordUpstreamRequest(t *testing.T) {
	RecordUpstreamRequest("news", "timeout", 15)

	body := scrape(t)
	assert.Contains(t, body, `jan_search_tool_upstream_requests_total{endpoint="news",status="timeout"}`)
	assert.Contains(t, body, `jan_search_tool_upstream_latency_seconds_count{endpoint="news"}`)
}

func TestRecordRequest(t *testing.T) {
	RecordRequest("POST", "200")

	assert.Contains(t, scrape(t), `jan_search_tool_requests_total{method="POST",status="200"}`)
}
