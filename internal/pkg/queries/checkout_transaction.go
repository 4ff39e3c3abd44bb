package queries

const (
	// Insert Queries
	InsertCheckoutTransaction = `
		INSERT INTO checkout_transactions (
			id, visit_id, idempotency_key, patient_id, total_cents, insurance_cents,
			patient_cents, line_items, coverage_overrides, package_usages,
			payment_record, signature, audit_trail, payload_hash, committed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (idempotency_key) DO NOTHING
	`

	// Select Queries
	GetCheckoutTransactionByIdempotencyKey = `
		SELECT
			id, visit_id, idempotency_key, patient_id, total_cents, insurance_cents,
			patient_cents, line_items, coverage_overrides, package_usages,
			payment_record, signature, audit_trail, payload_hash, committed_at
		FROM checkout_transactions
		WHERE idempotency_key = $1
	`

	GetCheckoutTransactionByVisitID = `
		SELECT
			id, visit_id, idempotency_key, patient_id, total_cents, insurance_cents,
			patient_cents, line_items, coverage_overrides, package_usages,
			payment_record, signature, audit_trail, payload_hash, committed_at
		FROM checkout_transactions
		WHERE visit_id = $1
	`
)
