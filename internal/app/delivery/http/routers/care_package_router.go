package routers

import (
	"caredesk-service/internal/app/services/core/carepackages"

	"github.com/go-chi/chi/v5"
)

func attachCarePackageRoutes(router chi.Router, carePackageController *carepackages.CarePackageController) {
	router.Post("/use", carePackageController.UseSession)
}
