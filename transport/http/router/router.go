package router

import (
	"dpbooking/internal/handlers/auth"
	"dpbooking/internal/handlers/booking"
	"dpbooking/internal/handlers/meal"
	"dpbooking/internal/handlers/report"
	"dpbooking/internal/handlers/user"
	"dpbooking/internal/handlers/venue"
	"dpbooking/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Venue   venue.Handler
	Meal    meal.Handler
	Booking booking.Handler
	Report  report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthRole.Auth)
			protected.Use(r.AuthRole.RBAC)

			r.DomainHandlers.Auth.MeRouter(protected)
			r.DomainHandlers.User.Router(protected)
			r.DomainHandlers.Venue.Router(protected)
			r.DomainHandlers.Meal.Router(protected)
			r.DomainHandlers.Booking.Router(protected)
			r.DomainHandlers.Report.Router(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
