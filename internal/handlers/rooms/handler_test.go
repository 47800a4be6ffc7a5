package rooms_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/jwt"
	"inn/infras/otel/mocks"
	bookingMocks "inn/internal/domains/booking/mocks"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/handlers/rooms"
	"inn/transport/http/middleware"
)

func newRouter(t *testing.T) (chi.Router, *bookingMocks.MockBookingService, jwt.JWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := bookingMocks.NewMockBookingService(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.JWT.AdminSecret = "test-secret"
	cfg.JWT.AdminExpireMin = 60

	jwtService := jwt.New(cfg)
	adminMiddleware := middleware.NewAdminMiddleware(jwtService, mockOtel)

	handler := rooms.New(mockService, adminMiddleware, mockOtel)

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	return router, mockService, jwtService
}

func bulkRequest(t *testing.T, jwtService jwt.JWT, body string) *http.Request {
	t.Helper()

	token, err := jwtService.GenerateAdminToken("ops")
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/rooms/bulk-update", strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+token)

	return request
}

func TestHandler_BulkUpdate(t *testing.T) {
	t.Run("all entries applied returns 200", func(t *testing.T) {
		router, mockService, jwtService := newRouter(t)

		mockService.EXPECT().
			ApplyBulkAvailability(gomock.Any(), gomock.Any()).
			Return(dto.BulkUpdateResponse{
				Success: true,
				Stats:   dto.BulkUpdateStats{Success: 2, Errors: []string{}},
			})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, bulkRequest(t, jwtService, `{"Suite":5,"Deluxe":3}`))

		require.Equal(t, http.StatusOK, recorder.Code)

		var payload dto.BulkUpdateResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.True(t, payload.Success)
		assert.Equal(t, 2, payload.Stats.Success)
	})

	t.Run("partial failure returns 207 with per-entry errors", func(t *testing.T) {
		router, mockService, jwtService := newRouter(t)

		mockService.EXPECT().
			ApplyBulkAvailability(gomock.Any(), gomock.Any()).
			Return(dto.BulkUpdateResponse{
				Success: false,
				Stats: dto.BulkUpdateStats{
					Success: 1,
					Failed:  1,
					Errors:  []string{"BadRoom: count must be a number"},
				},
			})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, bulkRequest(t, jwtService, `{"Suite":5,"BadRoom":"abc"}`))

		require.Equal(t, http.StatusMultiStatus, recorder.Code)

		var payload dto.BulkUpdateResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.False(t, payload.Success)
		assert.Equal(t, 1, payload.Stats.Failed)
		require.Len(t, payload.Stats.Errors, 1)
		assert.Contains(t, payload.Stats.Errors[0], "BadRoom")
	})

	t.Run("empty body returns 400", func(t *testing.T) {
		router, _, jwtService := newRouter(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, bulkRequest(t, jwtService, `{}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		router, _, _ := newRouter(t)

		request := httptest.NewRequest(http.MethodPost, "/api/rooms/bulk-update", strings.NewReader(`{"Suite":5}`))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		router, _, _ := newRouter(t)

		request := httptest.NewRequest(http.MethodPost, "/api/rooms/bulk-update", strings.NewReader(`{"Suite":5}`))
		request.Header.Set("Authorization", "Bearer not-a-token")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
