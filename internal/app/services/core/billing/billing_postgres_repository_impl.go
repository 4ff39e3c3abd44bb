package billing

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/queries"
	"context"
	"database/sql"
)

// BillingPostgresRepository mirrors ledger mutations into visit-scoped rows so
// reporting can see billed codes before the visit commits. No business logic.
type BillingPostgresRepository struct {
	DB *sql.DB
}

func NewBillingPostgresRepository(db *sql.DB) contracts.BillingEntryRepository {
	return &BillingPostgresRepository{
		DB: db,
	}
}

func (repo *BillingPostgresRepository) InsertBillingEntry(ctx context.Context, visitID string, item models.LineItem) error {
	query := queries.InsertBillingEntry
	var entryID string
	err := repo.DB.QueryRowContext(ctx, query,
		visitID,
		item.Code,
		item.Description,
		item.UnitPriceCents,
		item.Units,
		item.InsuranceCovered,
		item.AddedBy,
	).Scan(&entryID)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *BillingPostgresRepository) DeleteBillingEntry(ctx context.Context, visitID, code string) error {
	query := queries.DeleteBillingEntry
	_, err := repo.DB.ExecContext(ctx, query, visitID, code)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

func (repo *BillingPostgresRepository) InsertDiagnosticEntry(ctx context.Context, visitID, code, description, recordedBy string) error {
	query := queries.InsertDiagnosticEntry
	var entryID string
	err := repo.DB.QueryRowContext(ctx, query, visitID, code, description, recordedBy).Scan(&entryID)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *BillingPostgresRepository) DeleteDiagnosticEntry(ctx context.Context, visitID, code string) error {
	query := queries.DeleteDiagnosticEntry
	_, err := repo.DB.ExecContext(ctx, query, visitID, code)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}
