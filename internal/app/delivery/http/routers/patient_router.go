package routers

import (
	"caredesk-service/internal/app/services/core/carepackages"
	"caredesk-service/internal/app/services/core/coverage"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, insuranceController *coverage.InsuranceController, carePackageController *carepackages.CarePackageController) {
	router.Get("/insurance-profiles", insuranceController.ListProfiles)
	router.Get("/care-packages", carePackageController.ListActive)
}
