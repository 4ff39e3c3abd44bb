package requests

// AddLineItem carries a new billed service code for the visit ledger. Prices
// arrive as decimal strings and are converted to cents at the boundary.
type AddLineItem struct {
	Code             string `json:"code" validate:"required,billing_code"`
	Description      string `json:"description" validate:"required,max=255"`
	UnitPrice        string `json:"unit_price" validate:"required"`
	Units            int    `json:"units" validate:"omitempty,gte=1"`
	InsuranceCovered bool   `json:"insurance_covered"`

	// Operator is injected from the auth context, never from the client body.
	Operator string `json:"-"`
}

type UpdateLineItem struct {
	Description      *string `json:"description,omitempty" validate:"omitempty,max=255"`
	UnitPrice        *string `json:"unit_price,omitempty"`
	// omitempty cannot tell an explicit zero from an absent field once the
	// pointer is dereferenced, so the usecase rejects units below one.
	Units            *int    `json:"units,omitempty" validate:"omitempty,gte=1"`
	InsuranceCovered *bool   `json:"insurance_covered,omitempty"`

	Operator string `json:"-"`
}

type AddDiagnosticEntry struct {
	Code        string `json:"code" validate:"required,billing_code"`
	Description string `json:"description" validate:"required,max=255"`

	Operator string `json:"-"`
}
