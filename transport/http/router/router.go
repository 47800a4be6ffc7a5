package router

import (
	"github.com/go-chi/chi/v5"

	"inn/internal/handlers/availability"
	"inn/internal/handlers/booking"
	"inn/internal/handlers/health"
	"inn/internal/handlers/rooms"
)

type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
	Rooms        rooms.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Rooms.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
