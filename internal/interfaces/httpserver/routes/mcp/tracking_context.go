package mcp

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ToolTrackingContextKey is the context key for tool tracking data
type ToolTrackingContextKey struct{}

// ToolTrackingContext holds the tracking information sent by the orchestrator
type ToolTrackingContext struct {
	ConversationID string
	ToolCallID     string
	Enabled        bool
}

// ExtractToolTracking reads X-Conversation-ID and X-Tool-Call-ID into the request context
func ExtractToolTracking() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		conversationID := reqCtx.GetHeader("X-Conversation-ID")
		toolCallID := reqCtx.GetHeader("X-Tool-Call-ID")

		tracking := ToolTrackingContext{
			ConversationID: conversationID,
			ToolCallID:     toolCallID,
			Enabled:        conversationID != "" && toolCallID != "",
		}

		ctx := context.WithValue(reqCtx.Request.Context(), ToolTrackingContextKey{}, tracking)
		reqCtx.Request = reqCtx.Request.WithContext(ctx)

		reqCtx.Next()
	}
}

// GetToolTracking retrieves tracking context from the request context
func GetToolTracking(ctx context.Context) (ToolTrackingContext, bool) {
	if tracking, ok := ctx.Value(ToolTrackingContextKey{}).(ToolTrackingContext); ok {
		return tracking, tracking.Enabled
	}
	return ToolTrackingContext{}, false
}
