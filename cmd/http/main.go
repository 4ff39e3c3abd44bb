package main

import (
	"caredesk-service/internal/app/config"
	"caredesk-service/internal/app/delivery/http/middlewares"
	"caredesk-service/internal/app/delivery/http/routers"
	"caredesk-service/internal/app/drivers/database"
	"caredesk-service/internal/app/drivers/logger"
	"caredesk-service/internal/app/drivers/messaging"
	"caredesk-service/internal/app/drivers/storage"
	"caredesk-service/internal/app/services/core/billing"
	"caredesk-service/internal/app/services/core/carepackages"
	"caredesk-service/internal/app/services/core/checkout"
	"caredesk-service/internal/app/services/core/coverage"
	"caredesk-service/internal/app/services/core/visits"
	"caredesk-service/internal/app/services/shared/events"
	"caredesk-service/internal/app/services/shared/locker"
	redisrepo "caredesk-service/internal/app/services/shared/redis"
	sharedstorage "caredesk-service/internal/app/services/shared/storage"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootstrapLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	postgresDB := database.NewPostgresDB(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Postgres:       postgresDB,
		Mongo:          mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapTheApp(bootstrap, minioClient)
	if err != nil {
		bootstrapLog.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		bootstrapLog.Fatalf("Failed to shutdown app dependencies: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) error {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	signatureStorage := sharedstorage.NewMinioSignatureStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)
	eventPublisher, err := events.NewRabbitMQEventPublisher(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Checkout.RabbitMQCheckoutQueue,
	)
	if err != nil {
		return err
	}

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Repositories
	visitRepository := visits.NewVisitPostgresRepository(bootstrap.Postgres)
	billingEntryRepository := billing.NewBillingPostgresRepository(bootstrap.Postgres)
	insuranceRepository := coverage.NewInsuranceMongoRepository(bootstrap.Mongo, bootstrap.DriverConfig.MongoDB.DbName)
	carePackageRepository := carepackages.NewCarePackageMongoRepository(bootstrap.Mongo, bootstrap.DriverConfig.MongoDB.DbName)
	sessionRepository := checkout.NewCheckoutSessionRedisRepository(
		redisRepository,
		time.Duration(bootstrap.InternalConfig.Checkout.SessionTTLInHours)*time.Hour,
	)
	transactionRepository := checkout.NewCheckoutTransactionPostgresRepository(bootstrap.Postgres)

	// Billing
	billingUsecase := billing.NewBillingUsecase(
		visitRepository,
		sessionRepository,
		insuranceRepository,
		billingEntryRepository,
		bootstrap.Logger,
	)
	billingController := billing.NewBillingController(bootstrap.Logger, billingUsecase)

	// Insurance
	insuranceUsecase := coverage.NewInsuranceUsecase(insuranceRepository, bootstrap.Logger)
	insuranceController := coverage.NewInsuranceController(bootstrap.Logger, insuranceUsecase)

	// Care packages
	carePackageUsecase := carepackages.NewCarePackageUsecase(carePackageRepository, bootstrap.Logger)
	carePackageController := carepackages.NewCarePackageController(bootstrap.Logger, carePackageUsecase)

	// Checkout
	checkoutUsecase := checkout.NewCheckoutUsecase(
		visitRepository,
		sessionRepository,
		transactionRepository,
		insuranceRepository,
		carePackageRepository,
		signatureStorage,
		eventPublisher,
		lockerService,
		time.Duration(bootstrap.InternalConfig.Checkout.CommitLockTTLInSeconds)*time.Second,
		bootstrap.Logger,
	)
	checkoutController := checkout.NewCheckoutController(bootstrap.Logger, checkoutUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		checkoutController,
		billingController,
		insuranceController,
		carePackageController,
	)
	return nil
}
