package payments

import (
	"caredesk-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("Zero Tender Is Pending", func(t *testing.T) {
		record := Compute(models.PaymentMethodCash, 0, 6500)

		assert.Equal(t, models.PaymentPending, record.Status, "nothing tendered should report pending")
		assert.Equal(t, int64(0), record.ChangeCents, "pending payment should carry no change")
		assert.Equal(t, int64(0), record.DeficitCents, "pending payment should carry no deficit")
	})

	t.Run("Short Tender Reports Deficit", func(t *testing.T) {
		record := Compute(models.PaymentMethodCash, 5000, 6500)

		assert.Equal(t, models.PaymentShort, record.Status, "tender below due should report short")
		assert.Equal(t, int64(1500), record.DeficitCents, "deficit should be due minus received")
		assert.Nil(t, record.Denominations, "short payment should not decompose change")
	})

	t.Run("Cash Tender With Change", func(t *testing.T) {
		record := Compute(models.PaymentMethodCash, 10000, 6500)

		assert.Equal(t, models.PaymentPaid, record.Status, "covering cash tender should be paid")
		assert.Equal(t, int64(3500), record.ChangeCents, "change should be received minus due")
		expected := []models.Denomination{
			{ValueCents: 2000, Count: 1},
			{ValueCents: 1000, Count: 1},
			{ValueCents: 500, Count: 1},
		}
		assert.Equal(t, expected, record.Denominations, "35.00 change should be one 20, one 10 and one 5")
	})

	t.Run("Exact Cash Tender", func(t *testing.T) {
		record := Compute(models.PaymentMethodCash, 6500, 6500)

		assert.Equal(t, models.PaymentPaid, record.Status)
		assert.Equal(t, int64(0), record.ChangeCents, "exact tender should produce no change")
		assert.Nil(t, record.Denominations, "zero change should not decompose")
	})

	t.Run("Covering Card Tender Awaits Confirmation", func(t *testing.T) {
		record := Compute(models.PaymentMethodCard, 6500, 6500)

		assert.Equal(t, models.PaymentAwaitingConfirmation, record.Status, "non-cash tender should await operator confirmation")
		assert.Equal(t, int64(0), record.ChangeCents, "card tender should not produce change")
	})

	t.Run("Zero Due Zero Tender", func(t *testing.T) {
		record := Compute(models.PaymentMethodCash, 0, 0)

		assert.Equal(t, models.PaymentPaid, record.Status, "nothing due and nothing tendered should settle as paid")
	})
}

func TestConfirm(t *testing.T) {
	t.Run("Confirms Awaiting Payment", func(t *testing.T) {
		record := Compute(models.PaymentMethodCard, 6500, 6500)

		err := Confirm(record)

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentConfirmed, record.Status)
		assert.True(t, record.Covers(), "confirmed payment should cover the responsibility")
	})

	t.Run("Rejects Pending Payment", func(t *testing.T) {
		record := Compute(models.PaymentMethodCard, 0, 6500)

		err := Confirm(record)

		assert.Error(t, err, "pending payment should not be confirmable")
		assert.Equal(t, models.PaymentPending, record.Status, "status should be unchanged on rejection")
	})

	t.Run("Rejects Paid Cash Payment", func(t *testing.T) {
		record := Compute(models.PaymentMethodCash, 6500, 6500)

		err := Confirm(record)

		assert.Error(t, err, "cash payments settle without confirmation")
	})

	t.Run("Rejects Nil Record", func(t *testing.T) {
		err := Confirm(nil)

		assert.Error(t, err)
	})
}

func TestDecomposeChange(t *testing.T) {
	t.Run("Uses Largest Denominations First", func(t *testing.T) {
		breakdown := DecomposeChange(4141)

		expected := []models.Denomination{
			{ValueCents: 2000, Count: 2},
			{ValueCents: 100, Count: 1},
			{ValueCents: 25, Count: 1},
			{ValueCents: 10, Count: 1},
			{ValueCents: 5, Count: 1},
			{ValueCents: 1, Count: 1},
		}
		assert.Equal(t, expected, breakdown)
	})

	t.Run("Zero And Negative Change", func(t *testing.T) {
		assert.Nil(t, DecomposeChange(0))
		assert.Nil(t, DecomposeChange(-100))
	})

	t.Run("Breakdown Sums Back To Change", func(t *testing.T) {
		for _, changeCents := range []int64{1, 7, 99, 137, 2599, 3500, 987654} {
			breakdown := DecomposeChange(changeCents)

			var sum int64
			for _, denomination := range breakdown {
				sum += denomination.ValueCents * int64(denomination.Count)
			}
			assert.Equal(t, changeCents, sum, "breakdown must sum back to the change amount")
		}
	})
}
