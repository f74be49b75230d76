package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ordering/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	doc, err := api.Load()
	require.NoError(t, err)
	validate, err := ValidateRequests(doc)
	require.NoError(t, err)

	e := echo.New()
	g := e.Group("/api/v1", validate)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	g.POST("/orders", ok)
	g.GET("/orders", ok)
	g.GET("/extra", ok)
	return e
}

func TestValidateRequests(t *testing.T) {
	e := validatedEcho(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{
			name:   "valid order",
			method: http.MethodPost,
			target: "/api/v1/orders",
			body: `{"items":[{"item_id":"7f1c2a8e-5a55-4c1b-9b0e-1d2f3a4b5c6d","quantity":2}],
				"shipping_address":{"line1":"12 MG Road","city":"Pune","postal_code":"411001"}}`,
			status: http.StatusNoContent,
		},
		{
			name:   "missing items",
			method: http.MethodPost,
			target: "/api/v1/orders",
			body:   `{"shipping_address":{"line1":"12 MG Road","city":"Pune","postal_code":"411001"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "zero quantity",
			method: http.MethodPost,
			target: "/api/v1/orders",
			body: `{"items":[{"item_id":"7f1c2a8e-5a55-4c1b-9b0e-1d2f3a4b5c6d","quantity":0}],
				"shipping_address":{"line1":"12 MG Road","city":"Pune","postal_code":"411001"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "bad status filter",
			method: http.MethodGet,
			target: "/api/v1/orders?status=lost",
			status: http.StatusBadRequest,
		},
		{
			name:   "route outside the document",
			method: http.MethodGet,
			target: "/api/v1/extra",
			status: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}
