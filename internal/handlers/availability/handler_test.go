package availability_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/infras/otel/mocks"
	invMocks "inn/internal/domains/inventory/mocks"
	"inn/internal/handlers/availability"
	"inn/shared/failure"
)

func newRouter(t *testing.T) (chi.Router, *invMocks.MockLedger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLedger := invMocks.NewMockLedger(ctrl)

	handler := availability.New(mockLedger, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	return router, mockLedger
}

func TestHandler_GetAvailability(t *testing.T) {
	t.Run("returns the availability map as the response body", func(t *testing.T) {
		router, mockLedger := newRouter(t)

		mockLedger.EXPECT().
			Snapshot(gomock.Any()).
			Return(map[string]int{"Suite": 5, "Deluxe": 0}, nil)

		request := httptest.NewRequest(http.MethodGet, "/api/availability", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var payload map[string]int
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Equal(t, map[string]int{"Suite": 5, "Deluxe": 0}, payload)
	})

	t.Run("empty inventory returns an empty object", func(t *testing.T) {
		router, mockLedger := newRouter(t)

		mockLedger.EXPECT().Snapshot(gomock.Any()).Return(nil, nil)

		request := httptest.NewRequest(http.MethodGet, "/api/availability", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{}`, recorder.Body.String())
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		router, mockLedger := newRouter(t)

		mockLedger.EXPECT().
			Snapshot(gomock.Any()).
			Return(nil, failure.InternalError(errors.New("store unreachable")))

		request := httptest.NewRequest(http.MethodGet, "/api/availability", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
