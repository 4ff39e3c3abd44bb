package config

import (
	"caredesk-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "caredesk"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "caredesk"),
			DbName:   utils.GetEnvString("POSTGRES_DB_NAME", "caredesk"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "caredesk"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "caredesk-signatures"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/New_York"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/v1"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Checkout: Checkout{
			SessionTTLInHours:         utils.GetEnvInt("CHECKOUT_SESSION_TTL_IN_HOURS", 24),
			CommitLockTTLInSeconds:    utils.GetEnvInt("CHECKOUT_COMMIT_LOCK_TTL_IN_SECONDS", 30),
			RequestTimeoutInSeconds:   utils.GetEnvInt("CHECKOUT_REQUEST_TIMEOUT_IN_SECONDS", 10),
			SignatureMaxUploadSizeKB:  utils.GetEnvInt64("CHECKOUT_SIGNATURE_MAX_UPLOAD_SIZE_IN_KB", 512),
			RabbitMQCheckoutQueue:     utils.GetEnvString("CHECKOUT_RABBITMQ_QUEUE", "visit.checkout"),
			CheckedOutEventExchange:   utils.GetEnvString("CHECKOUT_EVENT_EXCHANGE", ""),
			CheckedOutEventRoutingKey: utils.GetEnvString("CHECKOUT_EVENT_ROUTING_KEY", "visit.checked_out"),
		},
	}
}
