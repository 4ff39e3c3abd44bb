package visits

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/queries"
	"context"
	"database/sql"
	"fmt"
)

type VisitPostgresRepository struct {
	DB *sql.DB
}

func NewVisitPostgresRepository(db *sql.DB) contracts.VisitRepository {
	return &VisitPostgresRepository{
		DB: db,
	}
}

func (repo *VisitPostgresRepository) FindByID(ctx context.Context, visitID string) (*models.Visit, error) {
	query := queries.GetVisitByID
	var visit models.Visit
	err := repo.DB.QueryRowContext(ctx, query, visitID).Scan(
		&visit.ID,
		&visit.PatientID,
		&visit.PractitionerID,
		&visit.Status,
		&visit.ScheduledAt,
		&visit.CreatedAt,
		&visit.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &visit, nil
}

// TransitionStatus advances a visit lifecycle state. checked_out is terminal:
// the update refuses to touch a visit that already reached it, so a concurrent
// commit cannot advance the same visit twice.
func (repo *VisitPostgresRepository) TransitionStatus(ctx context.Context, visitID string, status models.VisitStatus) error {
	query := queries.UpdateVisitStatus
	result, err := repo.DB.ExecContext(ctx, query, status, visitID, models.VisitCheckedOut)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if affected == 0 {
		return exceptions.ErrCheckoutStateTransition(fmt.Errorf("visit %s is not in a state that allows transition to %s", visitID, status))
	}
	return nil
}
