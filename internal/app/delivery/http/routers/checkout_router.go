package routers

import (
	"caredesk-service/internal/app/services/core/billing"
	"caredesk-service/internal/app/services/core/checkout"

	"github.com/go-chi/chi/v5"
)

func attachCheckoutRoutes(router chi.Router, checkoutController *checkout.CheckoutController, billingController *billing.BillingController) {
	router.Get("/", checkoutController.GetSession)

	router.Post("/items", billingController.AddLineItem)
	router.Patch("/items/{code}", billingController.UpdateLineItem)
	router.Delete("/items/{code}", billingController.RemoveLineItem)

	router.Put("/overrides/{code}", checkoutController.SetOverride)
	router.Post("/package-uses", checkoutController.PlanPackageUse)
	router.Post("/payment", checkoutController.ComputePayment)
	router.Post("/payment/confirm", checkoutController.ConfirmPayment)
	router.Post("/signature", checkoutController.CaptureSignature)
	router.Post("/commit", checkoutController.Commit)
}
