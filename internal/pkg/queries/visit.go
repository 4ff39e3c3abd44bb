package queries

const (
	GetVisitByID = `
		SELECT id, patient_id, practitioner_id, status, scheduled_at, created_at, updated_at
		FROM visits
		WHERE id = $1
	`

	UpdateVisitStatus = `
		UPDATE visits
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $3
	`
)
