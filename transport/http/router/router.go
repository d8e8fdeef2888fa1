package router

import (
	"salon/internal/handlers/availability"
	"salon/internal/handlers/booking"
	"salon/internal/handlers/catalog"
	"salon/internal/handlers/conversation"
	"salon/internal/handlers/master"
	"salon/internal/handlers/staff"
	"salon/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Catalog      catalog.Handler
	Master       master.Handler
	Availability availability.Handler
	Conversation conversation.Handler
	Booking      booking.Handler
	Staff        staff.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Caller         middleware.Caller
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Caller.APIKey, r.Caller.Actor, r.Caller.Authorize)

		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Master.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Conversation.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, caller middleware.Caller) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Caller:         caller,
	}
}
