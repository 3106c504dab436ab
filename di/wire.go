//go:build wireinject
// +build wireinject

package di

import (
	"dpbooking/config"
	"dpbooking/infras/jwt"
	"dpbooking/infras/otel"
	"dpbooking/infras/postgres"
	"dpbooking/infras/redis"
	"dpbooking/permissions"
	"dpbooking/shared/cache"
	"dpbooking/transport/http"
	"dpbooking/transport/http/middleware"
	"dpbooking/transport/http/router"

	"github.com/google/wire"

	authService "dpbooking/internal/domains/auth/service"
	bookingRepository "dpbooking/internal/domains/booking/repository"
	bookingService "dpbooking/internal/domains/booking/service"
	mealRepository "dpbooking/internal/domains/meal/repository"
	mealService "dpbooking/internal/domains/meal/service"
	reportService "dpbooking/internal/domains/report/service"
	userRepository "dpbooking/internal/domains/user/repository"
	userService "dpbooking/internal/domains/user/service"
	venueRepository "dpbooking/internal/domains/venue/repository"
	venueService "dpbooking/internal/domains/venue/service"

	authHandler "dpbooking/internal/handlers/auth"
	bookingHandler "dpbooking/internal/handlers/booking"
	mealHandler "dpbooking/internal/handlers/meal"
	reportHandler "dpbooking/internal/handlers/report"
	userHandler "dpbooking/internal/handlers/user"
	venueHandler "dpbooking/internal/handlers/venue"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var venueDomain = wire.NewSet(
	venueRepository.New,
	venueService.New,
)

var mealDomain = wire.NewSet(
	mealRepository.New,
	mealService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	venueDomain,
	mealDomain,
	bookingDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	venueHandler.New,
	mealHandler.New,
	bookingHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
