package checkout

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/queries"
	"context"
	"database/sql"

	"github.com/goccy/go-json"
)

type CheckoutTransactionPostgresRepository struct {
	DB *sql.DB
}

func NewCheckoutTransactionPostgresRepository(db *sql.DB) contracts.CheckoutTransactionRepository {
	return &CheckoutTransactionPostgresRepository{
		DB: db,
	}
}

// Insert persists the committed transaction. The unique idempotency key plus
// ON CONFLICT DO NOTHING makes the write race-safe: when another commit
// already holds the key no row is written and inserted is false.
func (repo *CheckoutTransactionPostgresRepository) Insert(ctx context.Context, transaction *models.CheckoutTransaction) (bool, error) {
	lineItems, err := json.Marshal(transaction.LineItems)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	overrides, err := json.Marshal(transaction.Overrides)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	packageUsages, err := json.Marshal(transaction.PackageUsages)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	paymentRecord, err := json.Marshal(transaction.Payment)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	signature, err := json.Marshal(transaction.Signature)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	auditTrail, err := json.Marshal(transaction.Audit)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	query := queries.InsertCheckoutTransaction
	result, err := repo.DB.ExecContext(ctx, query,
		transaction.ID,
		transaction.VisitID,
		transaction.IdempotencyKey,
		transaction.PatientID,
		transaction.TotalCents,
		transaction.InsuranceCents,
		transaction.PatientCents,
		lineItems,
		overrides,
		packageUsages,
		paymentRecord,
		signature,
		auditTrail,
		transaction.PayloadHash,
		transaction.CommittedAt,
	)
	if err != nil {
		return false, exceptions.ErrPostgresDBInsertData(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBInsertData(err)
	}
	return affected == 1, nil
}

func (repo *CheckoutTransactionPostgresRepository) FindByIdempotencyKey(ctx context.Context, idempotencyKey string) (*models.CheckoutTransaction, error) {
	query := queries.GetCheckoutTransactionByIdempotencyKey

	var transaction models.CheckoutTransaction
	var lineItems, overrides, packageUsages, paymentRecord, signature, auditTrail []byte
	err := repo.DB.QueryRowContext(ctx, query, idempotencyKey).Scan(
		&transaction.ID,
		&transaction.VisitID,
		&transaction.IdempotencyKey,
		&transaction.PatientID,
		&transaction.TotalCents,
		&transaction.InsuranceCents,
		&transaction.PatientCents,
		&lineItems,
		&overrides,
		&packageUsages,
		&paymentRecord,
		&signature,
		&auditTrail,
		&transaction.PayloadHash,
		&transaction.CommittedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	if err := json.Unmarshal(lineItems, &transaction.LineItems); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := json.Unmarshal(overrides, &transaction.Overrides); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := json.Unmarshal(packageUsages, &transaction.PackageUsages); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := json.Unmarshal(paymentRecord, &transaction.Payment); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := json.Unmarshal(signature, &transaction.Signature); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := json.Unmarshal(auditTrail, &transaction.Audit); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &transaction, nil
}
