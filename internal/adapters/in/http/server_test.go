package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"procurement/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetOrder_MalformedOrderID_ReturnsValidationError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/orders/:orderID")
	ctx.SetParamNames("orderID")
	ctx.SetParamValues("not-a-uuid")

	s := &Server{logger: slog.Default()}
	require.NoError(t, s.GetOrder(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidationError, decodeErrorResponse(t, rec).Code)
}

func TestChangeOrderStatus_MalformedUserIDHeader_ReturnsValidationError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/x/status", nil)
	req.Header.Set(HeaderUserID, "garbage")
	req.Header.Set(HeaderUserRole, "manager")
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	s := &Server{logger: slog.Default()}
	require.NoError(t, s.ChangeOrderStatus(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidationError, decodeErrorResponse(t, rec).Code)
}

func TestChangeOrderStatus_MissingUserIDHeader_ReturnsValidationError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/x/status", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	s := &Server{logger: slog.Default()}
	require.NoError(t, s.ChangeOrderStatus(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidationError, decodeErrorResponse(t, rec).Code)
}

func TestRegisterRoutes_CompleteOrderRouteIsMounted(t *testing.T) {
	e := echo.New()
	s := &Server{logger: slog.Default()}
	s.RegisterRoutes(e)

	// An unrouted path would come back 404; the identity check answering
	// proves the complete endpoint is mounted.
	target := "/api/v1/orders/" + kernel.NewUUID().String() + "/complete"
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidationError, decodeErrorResponse(t, rec).Code)
}
