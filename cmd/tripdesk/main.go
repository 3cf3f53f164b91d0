package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"tripdesk/cfg"
	"tripdesk/internal/airline"
	"tripdesk/internal/booking"
	"tripdesk/internal/flight"
	"tripdesk/internal/hotel"
	"tripdesk/internal/location"
	"tripdesk/internal/middleware"
	"tripdesk/pkg/cache"
	"tripdesk/pkg/idgen"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/telemetry"
	"tripdesk/pkg/travelapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Tripdesk API
// @version         1.0
// @description     Travel search and booking orchestrator over a third-party travel-data API.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(context.Background(), &config.Observability)
	if err != nil {
		log.Printf("WARNING: failed to initialize OpenTelemetry: %v", err)
		log.Printf("Continuing without tracing/metrics...")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Printf("failed to shutdown OpenTelemetry: %v", err)
			}
		}()
	}

	// ============
	// Cache
	// ============
	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	redis := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	tokens := travelapi.NewTokenProvider(
		config.TravelAPIConfig.BaseURL,
		config.TravelAPIConfig.ClientID,
		config.TravelAPIConfig.ClientSecret,
		zlogger,
	)
	apiClient := travelapi.NewClient(httpClient, config.TravelAPIConfig.BaseURL, tokens, zlogger)

	// ============
	// Internal Service
	// ============
	refs, err := idgen.NewSnowflakeGenerator(1)
	if err != nil {
		log.Fatal(err)
	}

	locationResolver := location.NewResolver(apiClient, redis, config.CacheTTLMinutes, zlogger)
	airlineResolver := airline.NewResolver(apiClient, redis, config.CacheTTLMinutes, zlogger)

	flightSvc := flight.NewService(apiClient, locationResolver, airlineResolver, redis, config.CacheTTLMinutes, zlogger)
	bookingSvc := booking.NewService(apiClient, flightSvc, refs, config.PhoneCountryCallingCode, zlogger)
	hotelSvc := hotel.NewService(apiClient, locationResolver, zlogger)

	locationHandler := location.NewHandler(locationResolver)
	flightHandler := flight.NewFlightHandler(flightSvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	hotelHandler := hotel.NewHandler(hotelSvc)

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.TraceLogger(zlogger))

	locationHandler.RegisterRoutes(r)
	flightHandler.RegisterRoutes(r)
	bookingHandler.RegisterRoutes(r)
	hotelHandler.RegisterRoutes(r)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
