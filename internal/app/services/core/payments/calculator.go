package payments

import (
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/exceptions"
	"fmt"
)

// denominationsCents is the fixed descending tender set: 20, 10, 5 and 1
// currency units, then 25, 10, 5 and 1 cent coins.
var denominationsCents = []int64{2000, 1000, 500, 100, 25, 10, 5, 1}

// Compute builds the payment record for a tender against the patient
// responsibility. All arithmetic is in integer cents; nothing here touches
// floating point. A zero tender is not an error, it reports pending.
func Compute(method models.PaymentMethod, amountReceivedCents, totalDueCents int64) *models.PaymentRecord {
	record := &models.PaymentRecord{
		Method:              method,
		AmountReceivedCents: amountReceivedCents,
		TotalDueCents:       totalDueCents,
	}

	if amountReceivedCents == 0 && totalDueCents > 0 {
		record.Status = models.PaymentPending
		return record
	}

	if amountReceivedCents < totalDueCents {
		record.Status = models.PaymentShort
		record.DeficitCents = totalDueCents - amountReceivedCents
		return record
	}

	if method == models.PaymentMethodCash {
		record.ChangeCents = amountReceivedCents - totalDueCents
		record.Denominations = DecomposeChange(record.ChangeCents)
		record.Status = models.PaymentPaid
		return record
	}

	// Non-cash tenders settle out of band; the operator confirms explicitly.
	record.Status = models.PaymentAwaitingConfirmation
	return record
}

// Confirm marks a covering non-cash tender as settled.
func Confirm(record *models.PaymentRecord) error {
	if record == nil || record.Status != models.PaymentAwaitingConfirmation {
		return exceptions.ErrPaymentNotConfirmable(fmt.Errorf("payment is not awaiting confirmation"))
	}
	record.Status = models.PaymentConfirmed
	return nil
}

// DecomposeChange greedily splits change into the fixed denomination set by
// repeated integer division. The sum of the counts times the values always
// equals the input.
func DecomposeChange(changeCents int64) []models.Denomination {
	if changeCents <= 0 {
		return nil
	}

	var breakdown []models.Denomination
	remaining := changeCents
	for _, value := range denominationsCents {
		count := remaining / value
		if count == 0 {
			continue
		}
		breakdown = append(breakdown, models.Denomination{
			ValueCents: value,
			Count:      int(count),
		})
		remaining -= count * value
	}
	return breakdown
}
