package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T) *stage.Graph {
	t.Helper()

	pending, err := stage.NewStage(kernel.NewUUID(), "Pending", 0, "#6B7280", false, false)
	require.NoError(t, err)
	production, err := stage.NewStage(kernel.NewUUID(), "Production", 1, "#F59E0B", false, true)
	require.NoError(t, err)
	shipped, err := stage.NewStage(kernel.NewUUID(), "Shipped", 2, "#10B981", true, false)
	require.NoError(t, err)

	graph, err := stage.NewGraph([]*stage.Stage{pending, production, shipped})
	require.NoError(t, err)
	return graph
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Handlers{}, newTestGraph(t), slog.New(slog.DiscardHandler))
}

func TestRenderError_MapsDomainKindsToStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"object not found", errs.NewObjectNotFoundError("order", kernel.NewUUID().String()), http.StatusNotFound},
		{"conflict", errs.NewConflictError("user already has an active session"), http.StatusConflict},
		{"invalid state", errs.NewInvalidStateError("batch is completed"), http.StatusConflict},
		{"timer required", errs.NewTimerRequiredError(kernel.NewUUID().String(), kernel.NewUUID().String()), http.StatusUnprocessableEntity},
		{"worksheet incomplete", errs.NewWorksheetIncompleteError(kernel.NewUUID().String(), 2), http.StatusUnprocessableEntity},
		{"value invalid", errs.NewValueIsInvalidError("period"), http.StatusBadRequest},
		{"value required", errs.NewValueIsRequiredError("userID"), http.StatusBadRequest},
		{"value out of range", errs.NewValueIsOutOfRangeError("qty", -1, 0, 100), http.StatusBadRequest},
	}

	server := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, server.renderError(ctx, tt.err))

			assert.Equal(t, tt.wantCode, rec.Code)
			var payload Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, tt.wantCode, payload.Code)
			assert.Equal(t, tt.err.Error(), payload.Message)
		})
	}
}

func TestRenderError_UnknownErrorIsOpaque500(t *testing.T) {
	server := newTestServer(t)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, server.renderError(ctx, errors.New("pq: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Internal server error", payload.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRenderError_WrappedKindKeepsItsStatus(t *testing.T) {
	server := newTestServer(t)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	wrapped := errors.Join(errors.New("context"), errs.NewObjectNotFoundError("batch", kernel.NewUUID().String()))
	require.NoError(t, server.renderError(ctx, wrapped))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseUUIDParam(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		want := kernel.NewUUID()
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("orderID")
		ctx.SetParamValues(want.String())

		got, err := parseUUIDParam(ctx, "orderID")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("garbage is a value error", func(t *testing.T) {
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("orderID")
		ctx.SetParamValues("not-a-uuid")

		_, err := parseUUIDParam(ctx, "orderID")

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, err.Error(), "orderID")
	})
}

func TestParseIndexParam(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("itemIndex")
		ctx.SetParamValues("3")

		got, err := parseIndexParam(ctx, "itemIndex")

		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("negative is rejected", func(t *testing.T) {
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("itemIndex")
		ctx.SetParamValues("-1")

		_, err := parseIndexParam(ctx, "itemIndex")

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("non-numeric is rejected", func(t *testing.T) {
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("itemIndex")
		ctx.SetParamValues("first")

		_, err := parseIndexParam(ctx, "itemIndex")

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
	})
}
