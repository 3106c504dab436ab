// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"dpbooking/config"
	"dpbooking/infras/jwt"
	"dpbooking/infras/otel"
	"dpbooking/infras/postgres"
	"dpbooking/infras/redis"
	"dpbooking/internal/domains/auth/service"
	repository4 "dpbooking/internal/domains/booking/repository"
	service5 "dpbooking/internal/domains/booking/service"
	repository3 "dpbooking/internal/domains/meal/repository"
	service4 "dpbooking/internal/domains/meal/service"
	service6 "dpbooking/internal/domains/report/service"
	"dpbooking/internal/domains/user/repository"
	service2 "dpbooking/internal/domains/user/service"
	repository2 "dpbooking/internal/domains/venue/repository"
	service3 "dpbooking/internal/domains/venue/service"
	"dpbooking/internal/handlers/auth"
	"dpbooking/internal/handlers/booking"
	"dpbooking/internal/handlers/meal"
	"dpbooking/internal/handlers/report"
	"dpbooking/internal/handlers/user"
	"dpbooking/internal/handlers/venue"
	"dpbooking/permissions"
	"dpbooking/shared/cache"
	"dpbooking/transport/http"
	"dpbooking/transport/http/middleware"
	"dpbooking/transport/http/router"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	handler := auth.New(serviceAuth, serviceUser, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryVenue := repository2.New(connection, otelOtel)
	serviceVenue := service3.New(repositoryVenue, configConfig, redisCache, otelOtel)
	venueHandler := venue.New(serviceVenue, otelOtel)
	repositoryMeal := repository3.New(connection, otelOtel)
	serviceMeal := service4.New(repositoryMeal, configConfig, redisCache, otelOtel)
	mealHandler := meal.New(serviceMeal, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	serviceBooking := service5.New(repositoryBooking, repositoryVenue, repositoryMeal, configConfig, redisCache, otelOtel)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	serviceReport := service6.New(repositoryBooking, repositoryMeal, otelOtel)
	reportHandler := report.New(serviceReport, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:    handler,
		User:    userHandler,
		Venue:   venueHandler,
		Meal:    mealHandler,
		Booking: bookingHandler,
		Report:  reportHandler,
	}
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData)
	routerRouter := router.New(domainHandlers, authRole)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, permissions.Get)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var authDomain = wire.NewSet(service.New)

var userDomain = wire.NewSet(repository.New, service2.New)

var venueDomain = wire.NewSet(repository2.New, service3.New)

var mealDomain = wire.NewSet(repository3.New, service4.New)

var bookingDomain = wire.NewSet(repository4.New, service5.New)

var reportDomain = wire.NewSet(service6.New)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	venueDomain,
	mealDomain,
	bookingDomain,
	reportDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, venue.New, meal.New, booking.New, report.New, router.New)
