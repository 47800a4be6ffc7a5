package service_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/filestore"
	"inn/infras/otel/mocks"
	bookingMocks "inn/internal/domains/booking/mocks"
	"inn/internal/domains/booking/model"
	"inn/internal/domains/booking/model/dto"
	bookingRepository "inn/internal/domains/booking/repository"
	"inn/internal/domains/booking/service"
	invMocks "inn/internal/domains/inventory/mocks"
	invRepository "inn/internal/domains/inventory/repository"
	inventoryService "inn/internal/domains/inventory/service"
	cacheMocks "inn/shared/cache/mocks"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *invMocks.MockLedger) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockLedger := invMocks.NewMockLedger(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Store.PersistTimeoutSeconds = 5

	return service.New(mockRepo, mockLedger, cfg, mockCache, nil, mockOtel), mockRepo, mockLedger
}

func TestBooking_Submit(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomType:  "Suite",
		Quantity:  2,
		GuestName: "Jane Doe",
	}

	t.Run("successful submit returns confirmed booking and new available", func(t *testing.T) {
		svc, mockRepo, mockLedger := newBookingService(t)

		mockLedger.EXPECT().Reserve(gomock.Any(), "Suite", 2).Return(8, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, "Suite", booking.RoomType)
				assert.Equal(t, 2, booking.Quantity)
				assert.Equal(t, constant.BookingStatusConfirmed, booking.Status)
				assert.NotEmpty(t, booking.ID)

				return nil
			})

		res, err := svc.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 8, res.NewAvailable)
		assert.Equal(t, "Suite", res.Booking.RoomType)
		assert.Equal(t, constant.BookingStatusConfirmed, res.Booking.Status)
		assert.NotEmpty(t, res.Booking.ID)
	})

	t.Run("reserve rejection propagates unchanged", func(t *testing.T) {
		svc, _, mockLedger := newBookingService(t)

		mockLedger.EXPECT().
			Reserve(gomock.Any(), "Suite", 2).
			Return(0, failure.BadRequest(inventoryService.ErrInsufficientStock))

		_, err := svc.Submit(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, inventoryService.ErrInsufficientStock)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown room type propagates unchanged", func(t *testing.T) {
		svc, _, mockLedger := newBookingService(t)

		mockLedger.EXPECT().
			Reserve(gomock.Any(), "Suite", 2).
			Return(0, failure.NotFoundFromError(inventoryService.ErrRoomTypeNotFound))

		_, err := svc.Submit(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, inventoryService.ErrRoomTypeNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("persistence failure compensates the reservation", func(t *testing.T) {
		svc, mockRepo, mockLedger := newBookingService(t)

		mockLedger.EXPECT().Reserve(gomock.Any(), "Suite", 2).Return(8, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		mockLedger.EXPECT().Release(gomock.Any(), "Suite", 2).Return(10, nil)

		_, err := svc.Submit(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrPersistence)
		assert.NotErrorIs(t, err, service.ErrCompensation)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("failed compensation surfaces both causes", func(t *testing.T) {
		svc, mockRepo, mockLedger := newBookingService(t)

		mockLedger.EXPECT().Reserve(gomock.Any(), "Suite", 2).Return(8, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		mockLedger.EXPECT().
			Release(gomock.Any(), "Suite", 2).
			Return(0, errors.New("store unreachable"))

		_, err := svc.Submit(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrCompensation)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Contains(t, err.Error(), "connection reset")
		assert.Contains(t, err.Error(), "store unreachable")
	})

	t.Run("empty room type is rejected before reserving", func(t *testing.T) {
		svc, _, _ := newBookingService(t)

		_, err := svc.Submit(context.Background(), dto.CreateBookingRequest{GuestName: "Jane Doe", Quantity: 1})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

// Submit against a real ledger and file-backed stores: the second booking
// must be rejected once the stock is down to one.
func TestBooking_SubmitDrainsStock(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Store.FilePath = filepath.Join(t.TempDir(), "inn.json")
	cfg.Store.PersistTimeoutSeconds = 5

	store, err := filestore.New(cfg)
	require.NoError(t, err)

	mockOtel := mocks.NewOtel()
	ledger := inventoryService.New(invRepository.NewFile(store, mockOtel), cfg, mockCache, mockOtel)
	svc := service.New(bookingRepository.NewFile(store, mockOtel), ledger, cfg, mockCache, nil, mockOtel)

	ctx := context.Background()

	require.NoError(t, ledger.SetAvailable(ctx, "Suite", 3))

	res, err := svc.Submit(ctx, dto.CreateBookingRequest{RoomType: "Suite", Quantity: 2, GuestName: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewAvailable)
	assert.Equal(t, 2, res.Booking.Quantity)

	_, err = svc.Submit(ctx, dto.CreateBookingRequest{RoomType: "Suite", Quantity: 2, GuestName: "John Roe"})
	require.Error(t, err)
	assert.ErrorIs(t, err, inventoryService.ErrInsufficientStock)

	snapshot, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot["Suite"])

	listed, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, "")
	require.NoError(t, err)
	require.Len(t, listed.Bookings, 1)
	assert.Equal(t, res.Booking.ID, listed.Bookings[0].ID)
}

func TestBooking_GetAll(t *testing.T) {
	t.Run("returns bookings with pagination metadata", func(t *testing.T) {
		svc, mockRepo, _ := newBookingService(t)

		params := gDto.QueryParams{Page: 1, Limit: 10}

		mockRepo.EXPECT().Count(gomock.Any(), "").Return(2, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), params, "").
			Return([]model.Booking{
				{ID: "b2", RoomType: "Suite", Quantity: 1},
				{ID: "b1", RoomType: "Deluxe", Quantity: 2},
			}, nil)

		res, err := svc.GetAll(context.Background(), params, "")

		require.NoError(t, err)
		assert.Len(t, res.Bookings, 2)
		assert.Equal(t, "b2", res.Bookings[0].ID)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})

	t.Run("repository failure maps to internal error", func(t *testing.T) {
		svc, mockRepo, _ := newBookingService(t)

		params := gDto.QueryParams{Page: 1, Limit: 10}

		mockRepo.EXPECT().Count(gomock.Any(), "Suite").Return(0, errors.New("connection reset"))

		_, err := svc.GetAll(context.Background(), params, "Suite")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBooking_ApplyBulkAvailability(t *testing.T) {
	t.Run("applies every valid entry and reports the bad one", func(t *testing.T) {
		svc, _, mockLedger := newBookingService(t)

		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Deluxe", 3).Return(nil)
		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Suite", 5).Return(nil)

		res := svc.ApplyBulkAvailability(context.Background(), map[string]any{
			"Suite":   float64(5),
			"Deluxe":  float64(3),
			"BadRoom": "abc",
		})

		assert.False(t, res.Success)
		assert.Equal(t, 2, res.Stats.Success)
		assert.Equal(t, 1, res.Stats.Failed)
		require.Len(t, res.Stats.Errors, 1)
		assert.Contains(t, res.Stats.Errors[0], "BadRoom")
	})

	t.Run("all valid entries report success", func(t *testing.T) {
		svc, _, mockLedger := newBookingService(t)

		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Standard", 0).Return(nil)
		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Suite", 7).Return(nil)

		res := svc.ApplyBulkAvailability(context.Background(), map[string]any{
			"Suite":    float64(7),
			"Standard": float64(0),
		})

		assert.True(t, res.Success)
		assert.Equal(t, 2, res.Stats.Success)
		assert.Zero(t, res.Stats.Failed)
		assert.Empty(t, res.Stats.Errors)
	})

	t.Run("ledger failure fails only that entry", func(t *testing.T) {
		svc, _, mockLedger := newBookingService(t)

		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Deluxe", 3).Return(failure.InternalError(errors.New("store unreachable")))
		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Suite", 5).Return(nil)

		res := svc.ApplyBulkAvailability(context.Background(), map[string]any{
			"Suite":  float64(5),
			"Deluxe": float64(3),
		})

		assert.False(t, res.Success)
		assert.Equal(t, 1, res.Stats.Success)
		assert.Equal(t, 1, res.Stats.Failed)
		require.Len(t, res.Stats.Errors, 1)
		assert.Contains(t, res.Stats.Errors[0], "Deluxe")
	})

	t.Run("string counts are coerced", func(t *testing.T) {
		svc, _, mockLedger := newBookingService(t)

		mockLedger.EXPECT().SetAvailable(gomock.Any(), "Suite", 4).Return(nil)

		res := svc.ApplyBulkAvailability(context.Background(), map[string]any{
			"Suite": "4",
		})

		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Stats.Success)
	})

	t.Run("fractional counts are rejected", func(t *testing.T) {
		svc, _, _ := newBookingService(t)

		res := svc.ApplyBulkAvailability(context.Background(), map[string]any{
			"Suite": 2.5,
		})

		assert.False(t, res.Success)
		assert.Equal(t, 1, res.Stats.Failed)
	})
}
