//go:build wireinject
// +build wireinject

package di

import (
	"github.com/ComfortN/restaurent-cms/config"
	"github.com/ComfortN/restaurent-cms/infras/jwt"
	"github.com/ComfortN/restaurent-cms/infras/kafka"
	"github.com/ComfortN/restaurent-cms/infras/notifier"
	"github.com/ComfortN/restaurent-cms/infras/otel"
	"github.com/ComfortN/restaurent-cms/infras/payment"
	"github.com/ComfortN/restaurent-cms/infras/postgres"
	"github.com/ComfortN/restaurent-cms/infras/redis"
	"github.com/ComfortN/restaurent-cms/permissions"
	"github.com/ComfortN/restaurent-cms/shared/cache"
	"github.com/ComfortN/restaurent-cms/transport/http"
	"github.com/ComfortN/restaurent-cms/transport/http/middleware"
	"github.com/ComfortN/restaurent-cms/transport/http/router"

	authService "github.com/ComfortN/restaurent-cms/internal/domains/auth/service"
	reservationRepository "github.com/ComfortN/restaurent-cms/internal/domains/reservation/repository"
	reservationService "github.com/ComfortN/restaurent-cms/internal/domains/reservation/service"
	restaurantRepository "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/repository"
	restaurantService "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/service"
	userRepository "github.com/ComfortN/restaurent-cms/internal/domains/user/repository"

	authHandler "github.com/ComfortN/restaurent-cms/internal/handlers/auth"
	reservationHandler "github.com/ComfortN/restaurent-cms/internal/handlers/reservation"
	restaurantHandler "github.com/ComfortN/restaurent-cms/internal/handlers/restaurant"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	notifier.New,
	payment.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var restaurantDomain = wire.NewSet(
	restaurantRepository.New,
	restaurantService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	restaurantDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	restaurantHandler.New,
	reservationHandler.New,
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
