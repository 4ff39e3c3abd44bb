package routers

import (
	"caredesk-service/internal/app/config"
	"caredesk-service/internal/app/delivery/http/middlewares"
	"caredesk-service/internal/app/services/core/billing"
	"caredesk-service/internal/app/services/core/carepackages"
	"caredesk-service/internal/app/services/core/checkout"
	"caredesk-service/internal/app/services/core/coverage"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	checkoutController *checkout.CheckoutController,
	billingController *billing.BillingController,
	insuranceController *coverage.InsuranceController,
	carePackageController *carepackages.CarePackageController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := internalConfig.App.EndpointPrefix
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.OperatorAuth)

			r.Route("/visits/{visitID}", func(r chi.Router) {
				r.Route("/checkout", func(r chi.Router) {
					attachCheckoutRoutes(r, checkoutController, billingController)
				})

				r.Post("/diagnostics", billingController.AddDiagnosticEntry)
				r.Delete("/diagnostics/{code}", billingController.RemoveDiagnosticEntry)
			})

			r.Route("/patients/{patientID}", func(r chi.Router) {
				attachPatientRoutes(r, insuranceController, carePackageController)
			})

			r.Route("/care-packages/{packageID}", func(r chi.Router) {
				attachCarePackageRoutes(r, carePackageController)
			})
		})
	})
}
