package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type TravelAPIConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv                  string
	AppPort                 string
	RedisConfig             RedisConfig
	TravelAPIConfig         TravelAPIConfig
	Observability           ObservabilityConfig
	CacheTTLMinutes         int
	PhoneCountryCallingCode string
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	travelAPIBaseUrl := mustEnv("TRAVEL_API_BASE_URL", &errs)
	travelAPIClientID := mustEnv("TRAVEL_API_CLIENT_ID", &errs)
	travelAPIClientSecret := mustEnv("TRAVEL_API_CLIENT_SECRET", &errs)

	otlpEndpoint := mustEnv("OTLP_ENDPOINT", &errs)
	serviceName := mustEnv("OTEL_SERVICE_NAME", &errs)

	callingCode := mustEnv("PHONE_COUNTRY_CALLING_CODE", &errs)

	cacheTTLMinutes := mustEnv("CACHE_TTL_MINUTES", &errs)
	cacheTTLMinutesInt, err := strconv.Atoi(cacheTTLMinutes)

	if err != nil {
		errs = append(errs, errors.New("conversion failed env: "+"CACHE_TTL_MINUTES"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		TravelAPIConfig: TravelAPIConfig{
			BaseURL:      travelAPIBaseUrl,
			ClientID:     travelAPIClientID,
			ClientSecret: travelAPIClientSecret,
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: otlpEndpoint,
			ServiceName:  serviceName,
			Environment:  appEnv,
		},
		CacheTTLMinutes:         cacheTTLMinutesInt,
		PhoneCountryCallingCode: callingCode,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}
