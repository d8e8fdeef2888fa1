//go:build wireinject
// +build wireinject

package di

import (
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/infras/queue"
	"salon/infras/redis"
	"salon/infras/s3"
	"salon/permissions"
	"salon/shared/cache"
	"salon/transport/http"
	"salon/transport/http/middleware"
	"salon/transport/http/router"
	"salon/transport/worker"

	appointmentRepository "salon/internal/domains/appointment/repository"
	appointmentService "salon/internal/domains/appointment/service"
	availabilityService "salon/internal/domains/availability/service"
	bookingService "salon/internal/domains/booking/service"
	catalogRepository "salon/internal/domains/catalog/repository"
	catalogService "salon/internal/domains/catalog/service"
	clientRepository "salon/internal/domains/client/repository"
	conversationRepository "salon/internal/domains/conversation/repository"
	conversationService "salon/internal/domains/conversation/service"
	masterRepository "salon/internal/domains/master/repository"
	masterService "salon/internal/domains/master/service"
	notificationService "salon/internal/domains/notification/service"
	scheduleRepository "salon/internal/domains/schedule/repository"
	scheduleService "salon/internal/domains/schedule/service"
	staffRepository "salon/internal/domains/staff/repository"
	staffService "salon/internal/domains/staff/service"

	"github.com/google/wire"

	availabilityHandler "salon/internal/handlers/availability"
	bookingHandler "salon/internal/handlers/booking"
	catalogHandler "salon/internal/handlers/catalog"
	conversationHandler "salon/internal/handlers/conversation"
	masterHandler "salon/internal/handlers/master"
	staffHandler "salon/internal/handlers/staff"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewCallerMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogRepository.NewCategory,
	catalogRepository.NewService,
	catalogService.New,
)

var masterDomain = wire.NewSet(
	masterRepository.New,
	masterService.New,
	masterService.NewPhoto,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var bookingDomain = wire.NewSet(
	clientRepository.New,
	availabilityService.New,
	availabilityService.NewQuery,
	notificationService.NewPublisher,
	bookingService.New,
)

var conversationDomain = wire.NewSet(
	conversationRepository.NewSessionStore,
	conversationService.NewMachine,
	conversationService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	masterDomain,
	scheduleDomain,
	appointmentDomain,
	bookingDomain,
	conversationDomain,
	staffDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	masterHandler.New,
	availabilityHandler.New,
	conversationHandler.New,
	bookingHandler.New,
	staffHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}

func InitializeWorker() (*worker.Worker, func(), error) {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		kafka.New,
		queue.New,
		queue.NewServer,
		masterRepository.New,
		clientRepository.New,
		appointmentRepository.New,
		notificationService.NewReminder,
		worker.New,
	)

	return &worker.Worker{}, nil, nil
}
