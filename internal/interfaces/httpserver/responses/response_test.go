package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/search-web-tool/utils/platformerrors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/tools/run", nil)
	return c, rec
}

func TestHandleError_StatusFromType(t *testing.T) {
	tests := []struct {
		errorType platformerrors.ErrorType
		status    int
	}{
		{platformerrors.ErrorTypeValidation, http.StatusBadRequest},
		{platformerrors.ErrorTypeNotFound, http.StatusNotFound},
		{platformerrors.ErrorTypeConfiguration, http.StatusInternalServerError},
		{platformerrors.ErrorTypeExternal, http.StatusBadGateway},
		{platformerrors.ErrorTypeTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			c, rec := newContext()
			ctx := context.WithValue(context.Background(), platformerrors.RequestIDKey{}, "req-1")
			err := platformerrors.NewError(ctx, platformerrors.LayerDomain, tt.errorType, "boom", nil, "fixed-uuid")

			HandleError(c, err, "public message")

			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, c.IsAborted())
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "fixed-uuid", resp.Code)
			assert.Equal(t, string(tt.errorType), resp.Type)
			assert.Equal(t, "public message", resp.Error)
			assert.Equal(t, "req-1", resp.RequestID)
		})
	}
}

func TestHandleError_ForeignError(t *testing.T) {
	c, rec := newContext()

	HandleError(c, errors.New("raw"), "search failed")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "search failed", resp.Error)
	assert.Empty(t, resp.Code)
}

func TestHandleNewError(t *testing.T) {
	c, rec := newContext()

	HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid payload", "uuid-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "uuid-1", resp.Code)
	assert.Equal(t, "invalid payload", resp.Error)
	require.Len(t, c.Errors, 1)
}
