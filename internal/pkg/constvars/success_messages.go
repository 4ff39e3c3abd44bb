package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Checkout session messages
	CheckoutSessionGetSuccess   = "get checkout session successfully"
	LineItemAddedSuccess        = "line item added successfully"
	LineItemUpdatedSuccess      = "line item updated successfully"
	LineItemRemovedSuccess      = "line item removed successfully"
	DiagnosticAddedSuccess      = "diagnostic entry added successfully"
	DiagnosticRemovedSuccess    = "diagnostic entry removed successfully"
	CoverageOverrideSetSuccess  = "coverage override recorded successfully"
	PackageUsePlannedSuccess    = "care package use planned successfully"
	PaymentComputedSuccess      = "payment computed successfully"
	PaymentConfirmedSuccess     = "payment confirmed successfully"
	SignatureCapturedSuccess    = "signature captured successfully"
	CheckoutCommittedSuccess    = "checkout committed successfully"
	CheckoutAlreadyCommittedMsg = "checkout was already committed, returning the stored transaction"

	// Patient-related messages
	InsuranceProfilesGetSuccess = "get insurance profiles successfully"
	CarePackagesGetSuccess      = "get active care packages successfully"
	CarePackageUsedSuccess      = "care package session used successfully"
)
