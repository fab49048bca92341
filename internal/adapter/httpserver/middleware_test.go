package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/bufferpad/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	counts map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{counts: make(map[string]int)}
}

func (r *countingRecorder) RecordError(errType string) {
	r.counts[errType]++
}

func runMiddleware(t *testing.T, recorder errorRecorder, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := ErrorHandlingMiddleware(recorder)(h)(c)
	return rec, err
}

func TestMiddlewareWithStructuredError(t *testing.T) {
	recorder := newCountingRecorder()

	rec, err := runMiddleware(t, recorder, func(c echo.Context) error {
		return apperrors.ValidationError("invalid form body").WithField("field", "text_input")
	})
	require.NoError(t, err) // handled, not returned

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid form body", resp.Error)
	assert.Equal(t, apperrors.TypeValidation, resp.Type)
	assert.Equal(t, "text_input", resp.Context["field"])
	assert.Equal(t, 1, recorder.counts["validation"])
}

func TestMiddlewareWithStandardError(t *testing.T) {
	recorder := newCountingRecorder()

	rec, err := runMiddleware(t, recorder, func(c echo.Context) error {
		return errors.New("standard error")
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.Equal(t, apperrors.TypeInternal, resp.Type)
	assert.Equal(t, 1, recorder.counts["internal"])
}

func TestMiddlewareWithNoError(t *testing.T) {
	recorder := newCountingRecorder()

	rec, err := runMiddleware(t, recorder, func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", rec.Body.String())
	assert.Empty(t, recorder.counts)
}

func TestMiddlewarePassesThroughHTTPErrors(t *testing.T) {
	tests := []struct {
		name     string
		httpErr  *echo.HTTPError
		wantType string
	}{
		{"not found", echo.ErrNotFound, "not_found"},
		{"too large", echo.ErrStatusRequestEntityTooLarge, "too_large"},
		{"method not allowed", echo.ErrMethodNotAllowed, "not_found"},
		{"bad gateway", echo.ErrBadGateway, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := newCountingRecorder()

			_, err := runMiddleware(t, recorder, func(c echo.Context) error {
				return tt.httpErr
			})

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.httpErr.Code, httpErr.Code)
			assert.Equal(t, 1, recorder.counts[tt.wantType])
		})
	}
}

func TestMiddlewareAllErrorTypes(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperrors.Error
		wantStatus int
	}{
		{"validation", apperrors.ValidationError("invalid"), http.StatusBadRequest},
		{"not_found", &apperrors.Error{Type: apperrors.TypeNotFound, Message: "missing"}, http.StatusNotFound},
		{"rate_limited", apperrors.RateLimitedError("slow down"), http.StatusTooManyRequests},
		{"internal", apperrors.InternalError("failed", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := newCountingRecorder()

			rec, err := runMiddleware(t, recorder, func(c echo.Context) error {
				return tt.err
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.err.Type, resp.Type)
			assert.Equal(t, 1, recorder.counts[tt.name])
		})
	}
}
