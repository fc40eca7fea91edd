package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func assignedItem(pricePerDay int64) *entity.RentalItem {
	unitID := uuid.New()
	return &entity.RentalItem{
		BaseSimple:       entity.BaseSimple{ID: uuid.New()},
		RentalID:         uuid.New(),
		MotorcycleUnitID: &unitID,
		Quantity:         1,
		PricePerDay:      decimal.NewFromInt(pricePerDay),
	}
}

func TestBillableDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		ret   string
		want  int
	}{
		{"same day counts one day", "2024-01-01", "2024-01-01", 1},
		{"inclusive span", "2024-01-01", "2024-01-03", 3},
		{"single overnight", "2024-01-01", "2024-01-02", 2},
		{"across month boundary", "2024-01-30", "2024-02-02", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := BillableDays(date(tt.start), date(tt.ret))
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestBillableDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 50, 0, 0, time.Local)
	ret := time.Date(2024, 1, 2, 0, 10, 0, 0, time.Local)

	days, err := BillableDays(start, ret)
	require.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestBillableDaysRejectsReturnBeforeStart(t *testing.T) {
	_, err := BillableDays(date("2024-01-05"), date("2024-01-04"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComputeCharge(t *testing.T) {
	items := []*entity.RentalItem{
		assignedItem(100000),
		assignedItem(150000),
	}

	days, total, err := ComputeCharge(date("2024-01-01"), date("2024-01-03"), items)
	require.NoError(t, err)
	assert.Equal(t, 3, days)
	assert.True(t, total.Equal(decimal.NewFromInt(750000)), "got %s", total)
}

func TestComputeChargeSkipsUnassignedItems(t *testing.T) {
	unassigned := &entity.RentalItem{
		BaseSimple:  entity.BaseSimple{ID: uuid.New()},
		Quantity:    1,
		PricePerDay: decimal.NewFromInt(999999),
	}
	items := []*entity.RentalItem{assignedItem(100000), unassigned}

	days, total, err := ComputeCharge(date("2024-01-01"), date("2024-01-01"), items)
	require.NoError(t, err)
	assert.Equal(t, 1, days)
	assert.True(t, total.Equal(decimal.NewFromInt(100000)), "got %s", total)
}

func TestComputeChargeNoItems(t *testing.T) {
	days, total, err := ComputeCharge(date("2024-01-01"), date("2024-01-03"), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, days)
	assert.True(t, total.IsZero())
}

func TestComputeChargeMultiQuantityItem(t *testing.T) {
	item := assignedItem(100000)
	item.Quantity = 2

	_, total, err := ComputeCharge(date("2024-01-01"), date("2024-01-02"), []*entity.RentalItem{item})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(400000)), "got %s", total)
}
