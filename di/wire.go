//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"inn/config"
	"inn/infras/jwt"
	"inn/infras/kafka"
	"inn/infras/otel"
	"inn/infras/redis"
	"inn/shared/cache"
	"inn/transport/http"
	"inn/transport/http/middleware"
	"inn/transport/http/router"

	bookingService "inn/internal/domains/booking/service"
	inventoryService "inn/internal/domains/inventory/service"

	availabilityHandler "inn/internal/handlers/availability"
	bookingHandler "inn/internal/handlers/booking"
	healthHandler "inn/internal/handlers/health"
	roomsHandler "inn/internal/handlers/rooms"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	kafka.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAdminMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var storage = wire.NewSet(
	NewStorage,
	ProvideInventoryRepository,
	ProvideBookingRepository,
)

var inventoryDomain = wire.NewSet(
	inventoryService.New,
)

var bookingDomain = wire.NewSet(
	bookingService.New,
)

var domains = wire.NewSet(
	inventoryDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	roomsHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		storage,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
