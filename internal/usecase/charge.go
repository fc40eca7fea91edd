package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

// BillableDays counts inclusive calendar days between two dates. A
// same-day return still bills one day; partial days round up by
// construction because only the date part counts.
func BillableDays(start, returned time.Time) (int, error) {
	s := truncateDate(start)
	r := truncateDate(returned)
	if r.Before(s) {
		return 0, fmt.Errorf("%w: return date %s is before start date %s",
			ErrValidation, r.Format("2006-01-02"), s.Format("2006-01-02"))
	}

	days := int(r.Sub(s).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// ComputeCharge prices a rental for a given return date. Only items
// with an assigned vehicle accrue charges; unassigned slots were never
// handed out and cost nothing.
func ComputeCharge(start, returned time.Time, items []*entity.RentalItem) (int, decimal.Decimal, error) {
	days, err := BillableDays(start, returned)
	if err != nil {
		return 0, decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		if !item.Assigned() {
			continue
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total = total.Add(item.PricePerDay.Mul(decimal.NewFromInt(int64(days * qty))))
	}
	return days, total, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
