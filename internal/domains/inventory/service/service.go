package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/ledger_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/otel"
	"inn/internal/domains/inventory/repository"
	"inn/shared"
	"inn/shared/cache"
	"inn/shared/constant"
	"inn/shared/failure"
)

const (
	cacheAvailability = "availability:all"
)

var (
	ErrRoomTypeNotFound  = errors.New("room type not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Ledger is the single source of truth for per-room-type stock.
// All mutations to a room type's available count are serialized per key,
// so Reserve's check-then-decrement is atomic with respect to concurrent
// Reserve, Release and SetAvailable calls on the same room type.
type Ledger interface {
	Reserve(ctx context.Context, roomType string, quantity int) (int, error)
	Release(ctx context.Context, roomType string, quantity int) (int, error)
	SetAvailable(ctx context.Context, roomType string, count int) error
	Snapshot(ctx context.Context) (map[string]int, error)
}

type serviceImpl struct {
	repo  repository.Inventory
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(repo repository.Inventory, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		locks: map[string]*sync.Mutex{},
	}
}

// keyLock returns the mutex owning the given room type, creating it on first use.
func (s *serviceImpl) keyLock(roomType string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[roomType]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[roomType] = lock
	}

	return lock
}

func (s *serviceImpl) Reserve(ctx context.Context, roomType string, quantity int) (newAvailable int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if quantity < 1 {
		return 0, failure.BadRequestFromString("quantity must be at least 1") // nolint:wrapcheck
	}

	lock := s.keyLock(roomType)
	lock.Lock()
	defer lock.Unlock()

	available, found, err := s.repo.Get(ctx, roomType)
	if err != nil {
		log.Error().Err(err).Str("roomType", roomType).Msg("failed to read room inventory")

		return 0, failure.InternalError(fmt.Errorf("failed to read room inventory: %w", err)) // nolint:wrapcheck
	}

	if !found {
		return 0, failure.NotFoundFromError(fmt.Errorf("%w: %s", ErrRoomTypeNotFound, roomType)) // nolint:wrapcheck
	}

	if available < quantity {
		return 0, failure.BadRequest(fmt.Errorf("%w: only %d left for %s", ErrInsufficientStock, available, roomType)) // nolint:wrapcheck
	}

	newAvailable = available - quantity

	if err = s.repo.Set(ctx, roomType, newAvailable); err != nil {
		log.Error().Err(err).Str("roomType", roomType).Msg("failed to decrement room inventory")

		return 0, failure.InternalError(fmt.Errorf("failed to decrement room inventory: %w", err)) // nolint:wrapcheck
	}

	s.invalidateSnapshot(ctx)

	return newAvailable, nil
}

func (s *serviceImpl) Release(ctx context.Context, roomType string, quantity int) (newAvailable int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if quantity < 1 {
		return 0, failure.BadRequestFromString("quantity must be at least 1") // nolint:wrapcheck
	}

	lock := s.keyLock(roomType)
	lock.Lock()
	defer lock.Unlock()

	available, found, err := s.repo.Get(ctx, roomType)
	if err != nil {
		log.Error().Err(err).Str("roomType", roomType).Msg("failed to read room inventory")

		return 0, failure.InternalError(fmt.Errorf("failed to read room inventory: %w", err)) // nolint:wrapcheck
	}

	if !found {
		return 0, failure.NotFoundFromError(fmt.Errorf("%w: %s", ErrRoomTypeNotFound, roomType)) // nolint:wrapcheck
	}

	newAvailable = available + quantity

	if err = s.repo.Set(ctx, roomType, newAvailable); err != nil {
		log.Error().Err(err).Str("roomType", roomType).Msg("failed to restore room inventory")

		return 0, failure.InternalError(fmt.Errorf("failed to restore room inventory: %w", err)) // nolint:wrapcheck
	}

	s.invalidateSnapshot(ctx)

	return newAvailable, nil
}

func (s *serviceImpl) SetAvailable(ctx context.Context, roomType string, count int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if roomType == constant.Empty {
		return failure.BadRequestFromString("room type cannot be empty") // nolint:wrapcheck
	}

	if count < 0 {
		count = 0
	}

	lock := s.keyLock(roomType)
	lock.Lock()
	defer lock.Unlock()

	if err = s.repo.Set(ctx, roomType, count); err != nil {
		log.Error().Err(err).Str("roomType", roomType).Msg("failed to set room inventory")

		return failure.InternalError(fmt.Errorf("failed to set room inventory: %w", err)) // nolint:wrapcheck
	}

	s.invalidateSnapshot(ctx)

	return nil
}

func (s *serviceImpl) Snapshot(ctx context.Context) (res map[string]int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Snapshot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheAvailability, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheAvailability).Msg("cache hit for availability")

		return res, nil
	}

	res, err = s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read availability snapshot")

		return nil, failure.InternalError(fmt.Errorf("failed to read availability snapshot: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheAvailability, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability snapshot to cache")
		}
	}()

	return res, nil
}

// invalidateSnapshot drops the cached availability snapshot synchronously,
// so a Snapshot issued right after a mutation observes the new counts.
func (s *serviceImpl) invalidateSnapshot(ctx context.Context) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheAvailability)
}
