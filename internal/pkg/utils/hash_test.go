package utils

import (
	"caredesk-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hashTestSession() *models.CheckoutSession {
	return &models.CheckoutSession{
		VisitID:  "visit-001",
		Revision: 2,
		LineItems: []models.LineItem{
			{Code: "EXAM-STD", UnitPriceCents: 4500, Units: 1, InsuranceCovered: true},
			{Code: "LAB-CBC", UnitPriceCents: 2000, Units: 1, InsuranceCovered: true},
		},
		Overrides: map[string]models.CoverageOverride{
			"LAB-CBC":  {Code: "LAB-CBC", FullyCovered: true, OverriddenBy: "operator-7"},
			"EXAM-STD": {Code: "EXAM-STD", FullyCovered: true, OverriddenBy: "operator-7"},
		},
		Coverage: &models.CoverageResult{
			Revision:       2,
			SubtotalCents:  6500,
			InsuranceCents: 6500,
		},
	}
}

func TestHashCommitPayload(t *testing.T) {
	t.Run("Stable Across Calls", func(t *testing.T) {
		session := hashTestSession()

		first := HashCommitPayload(session)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, HashCommitPayload(session), "hash must not depend on map iteration order")
		}
	})

	t.Run("Ledger Edit Changes Hash", func(t *testing.T) {
		session := hashTestSession()
		before := HashCommitPayload(session)

		session.LineItems[0].Units = 2
		assert.NotEqual(t, before, HashCommitPayload(session))
	})

	t.Run("Override Change Changes Hash", func(t *testing.T) {
		session := hashTestSession()
		before := HashCommitPayload(session)

		delete(session.Overrides, "LAB-CBC")
		assert.NotEqual(t, before, HashCommitPayload(session))
	})

	t.Run("Planned Use Changes Hash", func(t *testing.T) {
		session := hashTestSession()
		before := HashCommitPayload(session)

		session.PlannedUses = append(session.PlannedUses, models.PlannedPackageUse{
			PackageID:   "pkg-001",
			BillingCode: "EXAM-STD",
		})
		assert.NotEqual(t, before, HashCommitPayload(session))
	})

	t.Run("Ignores Non Financial State", func(t *testing.T) {
		session := hashTestSession()
		before := HashCommitPayload(session)

		session.Signature = &models.SignatureRecord{ObjectName: "signatures/visit-001.png"}
		session.Audit = append(session.Audit, models.AuditEntry{Kind: models.AuditSignatureCaptured})
		assert.Equal(t, before, HashCommitPayload(session), "signature and audit state must not affect the replay fingerprint")
	})
}
