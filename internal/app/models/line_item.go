package models

// LineItem is one billed service code on the visit ledger. Prices are int64
// minor units (cents); display conversion happens in the DTO mappers.
type LineItem struct {
	Code             string `json:"code" bson:"code"`
	Description      string `json:"description" bson:"description"`
	UnitPriceCents   int64  `json:"unit_price_cents" bson:"unit_price_cents"`
	Units            int    `json:"units" bson:"units"`
	InsuranceCovered bool   `json:"insurance_covered" bson:"insurance_covered"`
	AddedBy          string `json:"added_by,omitempty" bson:"added_by,omitempty"`
}

func (li LineItem) TotalCents() int64 {
	return li.UnitPriceCents * int64(li.Units)
}
