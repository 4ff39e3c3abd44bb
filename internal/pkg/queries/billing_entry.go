package queries

const (
	// Billing entries mirror the catalogue of chargeable services per visit so
	// reporting can query them without unpacking committed transactions.
	InsertBillingEntry = `
		INSERT INTO billing_entries (
			visit_id, code, description, unit_price_cents, units, insurance_covered, created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		) RETURNING id
	`

	DeleteBillingEntry = `
		DELETE FROM billing_entries
		WHERE visit_id = $1 AND code = $2
	`

	InsertDiagnosticEntry = `
		INSERT INTO diagnostic_entries (
			visit_id, code, description, recorded_by, created_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		) RETURNING id
	`

	DeleteDiagnosticEntry = `
		DELETE FROM diagnostic_entries
		WHERE visit_id = $1 AND code = $2
	`
)
