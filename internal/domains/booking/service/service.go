package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/kafka"
	"inn/infras/otel"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/domains/booking/repository"
	inventoryService "inn/internal/domains/inventory/service"
	"inn/shared"
	"inn/shared/cache"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

var (
	// ErrPersistence marks a booking that could not be durably recorded after
	// its inventory was already reserved; the reservation is compensated.
	ErrPersistence = errors.New("failed to persist booking")

	// ErrCompensation marks the alarm condition where the compensating
	// release also failed, leaving the ledger short. Both causes are carried
	// in the message.
	ErrCompensation = errors.New("compensation failed")
)

type Booking interface {
	Submit(ctx context.Context, req dto.CreateBookingRequest) (dto.SubmitBookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, roomType string) (dto.GetBookingsResponse, error)
	ApplyBulkAvailability(ctx context.Context, counts map[string]any) dto.BulkUpdateResponse
}

type serviceImpl struct {
	repo   repository.Booking
	ledger inventoryService.Ledger
	cfg    *config.Config
	cache  cache.RedisCache
	events kafka.Client
	otel   otel.Otel
}

func New(repo repository.Booking, ledger inventoryService.Ledger, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:   repo,
		ledger: ledger,
		cfg:    cfg,
		cache:  cache,
		events: events,
		otel:   otel,
	}
}

// Submit turns a validated booking request into a persisted,
// inventory-consistent booking. The ledger decrement and the persistence
// write are two separate steps linked by compensation: the room-type lock is
// released before the (possibly slow) persistence call, and a persistence
// failure triggers a compensating release of the reserved quantity.
func (s *serviceImpl) Submit(ctx context.Context, req dto.CreateBookingRequest) (res dto.SubmitBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.RoomType == constant.Empty {
		return res, failure.BadRequestFromString("room type cannot be empty") // nolint:wrapcheck
	}

	newAvailable, err := s.ledger.Reserve(ctx, req.RoomType, req.Quantity)
	if err != nil {
		// RoomTypeNotFound and InsufficientStock are the user-facing
		// rejection reasons; they propagate unchanged.
		return res, err // nolint:wrapcheck
	}

	booking := req.ToModel()

	persistCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Store.PersistTimeoutSeconds)*time.Second)
	defer cancel()

	if insertErr := s.repo.Insert(persistCtx, booking); insertErr != nil {
		log.Error().Err(insertErr).Str("roomType", req.RoomType).Int("quantity", req.Quantity).Msg("failed to persist booking, compensating reservation")

		if _, releaseErr := s.ledger.Release(ctx, req.RoomType, req.Quantity); releaseErr != nil {
			log.Error().
				Err(releaseErr).
				Str("alarm", "compensation_failed").
				Str("roomType", req.RoomType).
				Int("quantity", req.Quantity).
				Msg("compensating release failed, ledger is short by the reserved quantity")

			return res, failure.InternalError(fmt.Errorf("%w: persist: %v; release %s x%d: %v",
				ErrCompensation, insertErr, req.RoomType, req.Quantity, releaseErr)) // nolint:wrapcheck
		}

		return res, failure.InternalError(fmt.Errorf("%w: %v", ErrPersistence, insertErr)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	s.publishConfirmed(ctx, booking.ID, req.RoomType, req.Quantity)

	res.Booking.FromModel(booking)
	res.NewAvailable = newAvailable

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, roomType string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, roomType)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, roomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.InternalError(fmt.Errorf("failed to count bookings: %w", err)) // nolint:wrapcheck
	}

	bookings, err := s.repo.GetAll(ctx, params, roomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.InternalError(fmt.Errorf("failed to get bookings: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(bookings, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, roomType string) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, roomType)

	var total int

	err := s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, roomType)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

// ApplyBulkAvailability applies each entry independently and never aborts on
// the first failure: an operator resynchronizing counts from a sheet keeps
// the valid rows even when one row is bad.
func (s *serviceImpl) ApplyBulkAvailability(ctx context.Context, counts map[string]any) dto.BulkUpdateResponse {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyBulkAvailability")
	defer scope.End()

	res := dto.BulkUpdateResponse{
		Stats: dto.BulkUpdateStats{Errors: []string{}},
	}

	roomTypes := make([]string, 0, len(counts))
	for roomType := range counts {
		roomTypes = append(roomTypes, roomType)
	}

	sort.Strings(roomTypes)

	for _, roomType := range roomTypes {
		count, ok := asCount(counts[roomType])
		if !ok {
			res.Stats.Failed++
			res.Stats.Errors = append(res.Stats.Errors, fmt.Sprintf("%s: count must be a number", roomType))

			continue
		}

		if err := s.ledger.SetAvailable(ctx, roomType, count); err != nil {
			log.Error().Err(err).Str("roomType", roomType).Msg("failed to apply bulk availability entry")

			res.Stats.Failed++
			res.Stats.Errors = append(res.Stats.Errors, fmt.Sprintf("%s: %s", roomType, err.Error()))

			continue
		}

		res.Stats.Success++
	}

	res.Success = res.Stats.Failed == 0

	return res
}

type bookingConfirmedEvent struct {
	BookingID string `json:"booking_id"`
	RoomType  string `json:"room_type"`
	Quantity  int    `json:"quantity"`
}

// publishConfirmed emits the booking.confirmed event, best-effort.
func (s *serviceImpl) publishConfirmed(ctx context.Context, bookingID, roomType string, quantity int) {
	if !s.cfg.Kafka.Enable || s.events == nil {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key: bookingID,
			Value: bookingConfirmedEvent{
				BookingID: bookingID,
				RoomType:  roomType,
				Quantity:  quantity,
			},
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to publish booking confirmed event")
		}
	}()
}

func asCount(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}

		return int(v), true
	case int:
		return v, true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return int(parsed), true
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}

		return parsed, true
	default:
		return 0, false
	}
}
