package booking_test

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

	"inn/infras/otel/mocks"
	bookingMocks "inn/internal/domains/booking/mocks"
	"inn/internal/domains/booking/model/dto"
	inventoryService "inn/internal/domains/inventory/service"
	"inn/internal/handlers/booking"
	gDto "inn/shared/dto"
	"inn/shared/failure"
)

func newRouter(t *testing.T) (chi.Router, *bookingMocks.MockBookingService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := bookingMocks.NewMockBookingService(ctrl)

	handler := booking.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	return router, mockService
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("valid request returns 201 with the confirmed booking", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req dto.CreateBookingRequest) (dto.SubmitBookingResponse, error) {
				assert.Equal(t, "Suite", req.RoomType)
				assert.Equal(t, 2, req.Quantity)
				assert.Equal(t, "Jane Doe", req.GuestName)

				return dto.SubmitBookingResponse{
					Booking:      dto.BookingResponse{ID: "b1", RoomType: "Suite", Quantity: 2, Status: "confirmed"},
					NewAvailable: 8,
				}, nil
			})

		body := `{"room_type":"Suite","quantity":2,"guest_name":"Jane Doe"}`
		request := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Equal(t, true, payload["success"])

		confirmed, ok := payload["booking"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "b1", confirmed["id"])
		assert.Equal(t, "confirmed", confirmed["status"])
	})

	t.Run("aliased field names are accepted", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req dto.CreateBookingRequest) (dto.SubmitBookingResponse, error) {
				assert.Equal(t, "Deluxe", req.RoomType)
				assert.Equal(t, 1, req.Quantity)
				assert.Equal(t, "John Roe", req.GuestName)

				return dto.SubmitBookingResponse{}, nil
			})

		body := `{"roomType":"Deluxe","full_name":"John Roe"}`
		request := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("missing guest name returns 400 without reaching the service", func(t *testing.T) {
		router, _ := newRouter(t)

		body := `{"room_type":"Suite"}`
		request := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		router, _ := newRouter(t)

		request := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("insufficient stock maps to 400 with the remaining count", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(dto.SubmitBookingResponse{}, failure.BadRequest(inventoryService.ErrInsufficientStock))

		body := `{"room_type":"Suite","quantity":5,"guest_name":"Jane Doe"}`
		request := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "insufficient stock")
	})

	t.Run("unknown room type maps to 404", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			Return(dto.SubmitBookingResponse{}, failure.NotFoundFromError(inventoryService.ErrRoomTypeNotFound))

		body := `{"room_type":"Penthouse","guest_name":"Jane Doe"}`
		request := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("body is the bare array of records, newest first", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), "").
			DoAndReturn(func(_ interface{}, params gDto.QueryParams, _ string) (dto.GetBookingsResponse, error) {
				assert.Equal(t, 1, params.Page)

				return dto.GetBookingsResponse{
					Bookings:  []dto.BookingResponse{{ID: "b2"}, {ID: "b1"}},
					TotalPage: 1,
					TotalData: 2,
				}, nil
			})

		request := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		// The body must decode as a JSON array, not a wrapping object.
		var payload []dto.BookingResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		require.Len(t, payload, 2)
		assert.Equal(t, "b2", payload[0].ID)
		assert.Equal(t, "b1", payload[1].ID)

		assert.Equal(t, "2", recorder.Header().Get("X-Total-Count"))
		assert.Equal(t, "1", recorder.Header().Get("X-Total-Pages"))
	})

	t.Run("no bookings is an empty array, not null", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), "").
			Return(dto.GetBookingsResponse{TotalPage: 1}, nil)

		request := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[]`, recorder.Body.String())
	})

	t.Run("passes the room type filter through", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), "Suite").
			Return(dto.GetBookingsResponse{Bookings: []dto.BookingResponse{}}, nil)

		request := httptest.NewRequest(http.MethodGet, "/api/bookings?room_type=Suite", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
