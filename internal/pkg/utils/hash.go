package utils

import (
	"caredesk-service/internal/app/models"
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/goccy/go-json"
)

// HashCommitPayload fingerprints the financially relevant session state so a
// replayed commit with a different ledger can be rejected instead of silently
// returning the stored transaction. Overrides are sorted by code to keep the
// hash stable across map iteration order.
func HashCommitPayload(session *models.CheckoutSession) string {
	codes := make([]string, 0, len(session.Overrides))
	for code := range session.Overrides {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	overrides := make([]models.CoverageOverride, 0, len(codes))
	for _, code := range codes {
		overrides = append(overrides, session.Overrides[code])
	}

	payload := struct {
		LineItems      []models.LineItem          `json:"line_items"`
		Overrides      []models.CoverageOverride  `json:"overrides"`
		PlannedUses    []models.PlannedPackageUse `json:"planned_uses"`
		SubtotalCents  int64                      `json:"subtotal_cents"`
		InsuranceCents int64                      `json:"insurance_cents"`
		PatientCents   int64                      `json:"patient_cents"`
	}{
		LineItems:     session.LineItems,
		Overrides:     overrides,
		PlannedUses:   session.PlannedUses,
		SubtotalCents: session.SubtotalCents(),
	}
	if session.Coverage != nil {
		payload.InsuranceCents = session.Coverage.InsuranceCents
		payload.PatientCents = session.Coverage.PatientCents
	}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
