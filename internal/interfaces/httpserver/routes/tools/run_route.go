package tools

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domainsearch "jan-server/services/search-web-tool/internal/domain/search"
	"jan-server/services/search-web-tool/internal/infrastructure/observability"
	"jan-server/services/search-web-tool/internal/interfaces/httpserver/responses"
	"jan-server/services/search-web-tool/utils/platformerrors"
)

// RunInputs are the tool inputs of a module run
type RunInputs struct {
	ToolName string `json:"tool_name"`
	Query    string `json:"query"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
}

// RunRequest is the module run envelope sent by the orchestration framework.
// Consumer identity, signature and deployment are opaque to the tool.
type RunRequest struct {
	Inputs     RunInputs       `json:"inputs"`
	ConsumerID string          `json:"consumer_id,omitempty"`
	Signature  string          `json:"signature,omitempty"`
	Deployment json.RawMessage `json:"deployment,omitempty" swaggertype:"object"`
}

type RunResponse struct {
	ToolName  string                `json:"tool_name"`
	Operation string                `json:"operation"`
	Count     int                   `json:"count"`
	Results   []domainsearch.Result `json:"results"`
}

type RunRoute struct {
	searchService *domainsearch.SearchService
}

func NewRunRoute(searchService *domainsearch.SearchService) *RunRoute {
	return &RunRoute{
		searchService: searchService,
	}
}

func (route *RunRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/tools/run", route.run)
}

// run executes a search tool from a module run envelope.
// @Summary Run a search tool
// @Description Dispatches inputs.tool_name (search_news_tool or search_web_tool, default search_news_tool) and returns the upstream result array.
// @Tags Tools API
// @Accept json
// @Produce json
// @Param request body RunRequest true "Module run envelope"
// @Success 200 {object} RunResponse
// @Failure 400 {object} responses.ErrorResponse "Empty query, unknown tool or invalid payload"
// @Failure 502 {object} responses.ErrorResponse "Upstream search provider failed"
// @Failure 504 {object} responses.ErrorResponse "Upstream search provider timed out"
// @Router /v1/tools/run [post]
func (route *RunRoute) run(reqCtx *gin.Context) {
	var req RunRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid module run payload", "3f6c1d8e-52a4-4d0b-9a57-1c2e8b7f4a10")
		return
	}

	toolName := strings.TrimSpace(req.Inputs.ToolName)
	if toolName == "" {
		toolName = domainsearch.DefaultToolName
	}

	log.Info().
		Str("tool_name", toolName).
		Str("consumer_id", observability.SanitizeID(req.ConsumerID)).
		Bool("signed", req.Signature != "").
		Bool("deployment", len(req.Deployment) > 0).
		Msg("module run received")

	op, results, err := route.searchService.Run(reqCtx.Request.Context(), toolName, domainsearch.SearchRequest{
		Query:     req.Inputs.Query,
		Location:  req.Inputs.Location,
		DateRange: req.Inputs.Date,
	})
	if err != nil {
		responses.HandleError(reqCtx, err, errorMessage(err))
		return
	}

	reqCtx.JSON(http.StatusOK, RunResponse{
		ToolName:  op.ToolName(),
		Operation: string(op),
		Count:     len(results),
		Results:   results,
	})
}

func errorMessage(err error) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Message
	}
	return "search failed"
}
