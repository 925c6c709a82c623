package billing

import (
	"github.com/shopspring/decimal"

	"hospital-management-backend/internal/models"
)

// DeriveStatus classifies a bill from its totals. Cancellation is sticky and
// wins over everything; otherwise the status is a pure function of
// (total, paid). A zero-total bill stays pending: there is nothing to pay.
func DeriveStatus(total, paid decimal.Decimal, cancelled bool) string {
	switch {
	case cancelled:
		return models.BillStatusCancelled
	case total.IsZero() || paid.IsZero():
		return models.BillStatusPending
	case paid.GreaterThanOrEqual(total):
		return models.BillStatusPaid
	default:
		return models.BillStatusPartial
	}
}

// ItemTotal computes quantity * unit_price rounded to 2 decimal places.
func ItemTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// SumItems computes the bill total from per-item totals, rounded to 2
// decimal places. Idempotent: recomputing over the same items always yields
// the same amount.
func SumItems(items []models.BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total.Round(2)
}
