package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/vnpay"
)

func newPaymentFixture(t *testing.T) (*paymentService, *store) {
	t.Helper()
	st := newStore()
	svc := NewPaymentService(&fakeDB{}, st.repository(), testVNPayClient(t), zap.NewNop()).(*paymentService)
	svc.now = func() time.Time { return fixedNow }
	return svc, st
}

func seedPendingVNPayOrder(st *store) (*entity.Rental, *entity.Payment) {
	code := "202403151030001234"
	rental := &entity.Rental{
		Base:               entity.Base{ID: uuid.New()},
		StartDate:          date("2024-04-01"),
		EndDate:            date("2024-04-03"),
		RentalDays:         3,
		TotalAmount:        decimal.NewFromInt(600000),
		DepositAmount:      decimal.NewFromInt(600000),
		Status:             entity.RentalStatusPending,
		PaymentMethod:      "vnpay",
		PaymentStatus:      entity.RentalPaymentPending,
		VNPayTransactionID: &code,
	}
	st.rentals[rental.ID] = rental

	payment := &entity.Payment{
		Base:          entity.Base{ID: uuid.New()},
		RentalID:      &rental.ID,
		PaymentCode:   code,
		Amount:        decimal.NewFromInt(600000),
		PaymentMethod: entity.PaymentMethodVNPay,
		PaymentStatus: entity.PaymentStatusPending,
	}
	st.payments[payment.ID] = payment

	return rental, payment
}

func signedCallback(params map[string]string) map[string]string {
	params["vnp_SecureHash"] = vnpay.Sign(testHashSecret, vnpay.HashData(params))
	return params
}

func callbackParamsFor(code, amountMinor, responseCode string) map[string]string {
	return signedCallback(map[string]string{
		"vnp_TmnCode":           "TESTTMN1",
		"vnp_TxnRef":            code,
		"vnp_Amount":            amountMinor,
		"vnp_ResponseCode":      responseCode,
		"vnp_TransactionStatus": responseCode,
		"vnp_TransactionNo":     "14226112",
		"vnp_BankCode":          "NCB",
		"vnp_PayDate":           "20240315103005",
		"vnp_OrderInfo":         "Thue xe may",
	})
}

func TestReconcileSuccessConfirmsDeposit(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	result, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "60000000", "00"))
	require.NoError(t, err)

	assert.Equal(t, "00", result.ResponseCode)
	assert.False(t, result.AlreadyProcessed)

	stored := st.payments[payment.ID]
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)
	require.NotNil(t, stored.VNPayTransactionID)
	assert.Equal(t, "14226112", *stored.VNPayTransactionID)
	require.NotNil(t, stored.VNPayBankCode)
	assert.Equal(t, "NCB", *stored.VNPayBankCode)
	require.NotNil(t, stored.VNPayPayDate)
	require.NotNil(t, stored.PaymentDate)

	reloaded := st.rentals[rental.ID]
	assert.Equal(t, entity.RentalStatusConfirmed, reloaded.Status)
	assert.Equal(t, entity.RentalPaymentPaid, reloaded.PaymentStatus)
	assert.True(t, reloaded.PaidAmount.Equal(decimal.NewFromInt(600000)))
}

func TestReconcileTamperedSignatureMutatesNothing(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	params := callbackParamsFor(payment.PaymentCode, "60000000", "00")
	params["vnp_Amount"] = "1"

	_, err := svc.Reconcile(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	assert.Equal(t, entity.PaymentStatusPending, st.payments[payment.ID].PaymentStatus)
	assert.Equal(t, entity.RentalStatusPending, st.rentals[rental.ID].Status)
	assert.True(t, st.rentals[rental.ID].PaidAmount.IsZero())
}

func TestReconcileRedeliveryIsNoOp(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)
	params := callbackParamsFor(payment.PaymentCode, "60000000", "00")

	_, err := svc.Reconcile(context.Background(), params)
	require.NoError(t, err)

	result, err := svc.Reconcile(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, result.AlreadyProcessed)

	// The deposit must not be counted twice.
	assert.True(t, st.rentals[rental.ID].PaidAmount.Equal(decimal.NewFromInt(600000)))
}

func TestReconcilePendingLeavesPaymentOpen(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	result, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "60000000", "02"))
	require.NoError(t, err)

	assert.False(t, result.AlreadyProcessed)
	assert.Equal(t, entity.PaymentStatusPending, st.payments[payment.ID].PaymentStatus)
	assert.Equal(t, entity.RentalStatusPending, st.rentals[rental.ID].Status)
}

func TestReconcileFailureCancelsFreshRental(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	result, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "60000000", "24"))
	require.NoError(t, err)

	assert.Equal(t, "24", result.ResponseCode)
	assert.Equal(t, entity.PaymentStatusFailed, st.payments[payment.ID].PaymentStatus)
	assert.Equal(t, entity.RentalStatusCancelled, st.rentals[rental.ID].Status)
	assert.Equal(t, entity.RentalPaymentFailed, st.rentals[rental.ID].PaymentStatus)
	assert.True(t, st.rentals[rental.ID].PaidAmount.IsZero())
}

func TestReconcileFailureKeepsActiveRental(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)
	rental.Status = entity.RentalStatusRented
	st.rentals[rental.ID] = rental

	_, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "60000000", "24"))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusFailed, st.payments[payment.ID].PaymentStatus)
	assert.Equal(t, entity.RentalStatusRented, st.rentals[rental.ID].Status)
}

func TestReconcileLegacyRentalReference(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)
	// Simulate an old order that never got a payment row.
	delete(st.payments, payment.ID)

	result, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "60000000", "00"))
	require.NoError(t, err)

	assert.Equal(t, "00", result.ResponseCode)
	require.Len(t, st.payments, 1)
	for _, recovered := range st.payments {
		assert.Equal(t, payment.PaymentCode, recovered.PaymentCode)
		assert.Equal(t, entity.PaymentStatusPaid, recovered.PaymentStatus)
		assert.True(t, recovered.Amount.Equal(decimal.NewFromInt(600000)))
	}
	assert.Equal(t, entity.RentalStatusConfirmed, st.rentals[rental.ID].Status)
}

func TestReconcileLegacyReferenceUsesExistingPayment(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	// An old order whose payment row was created under a different
	// code than the reference mirrored on the rental.
	legacyRef := "202401010900005678"
	rental.VNPayTransactionID = &legacyRef
	st.rentals[rental.ID] = rental

	_, err := svc.Reconcile(context.Background(), callbackParamsFor(legacyRef, "60000000", "00"))
	require.NoError(t, err)

	// The existing payment is settled; no duplicate row appears.
	require.Len(t, st.payments, 1)
	assert.Equal(t, entity.PaymentStatusPaid, st.payments[payment.ID].PaymentStatus)
	assert.Equal(t, entity.RentalStatusConfirmed, st.rentals[rental.ID].Status)
	assert.True(t, st.rentals[rental.ID].PaidAmount.Equal(decimal.NewFromInt(600000)))
}

func TestReconcileUnknownReference(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	_, err := svc.Reconcile(context.Background(), callbackParamsFor("999999999999999999", "60000000", "00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcileAmountMismatch(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	// Correctly signed, but for the wrong amount.
	_, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "12300", "00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, entity.PaymentStatusPending, st.payments[payment.ID].PaymentStatus)
	assert.Equal(t, entity.RentalStatusPending, st.rentals[rental.ID].Status)
}

func TestCreatePaymentURLConflictOnSettledPayment(t *testing.T) {
	svc, st := newPaymentFixture(t)
	_, payment := seedPendingVNPayOrder(st)
	payment.PaymentStatus = entity.PaymentStatusPaid
	st.payments[payment.ID] = payment

	_, err := svc.CreatePaymentURL(context.Background(), "10.0.0.1", &request.CreatePaymentRequest{
		OrderID: payment.PaymentCode,
		Amount:  "600000",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreatePaymentURLForNewOrder(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	result, err := svc.CreatePaymentURL(context.Background(), "10.0.0.1", &request.CreatePaymentRequest{
		OrderID: "ORDER-777",
		Amount:  "150000",
	})
	require.NoError(t, err)

	assert.Equal(t, "ORDER-777", result.PaymentCode)
	assert.Contains(t, result.PaymentURL, "vnp_TxnRef=ORDER-777")
	assert.Contains(t, result.PaymentURL, "vnp_Amount=15000000")
	assert.Contains(t, result.PaymentURL, "vnp_SecureHash=")
}

func TestReconcileSettlementClosesRental(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	unit := &entity.MotorcycleUnit{
		Base:         entity.Base{ID: uuid.New()},
		MotorcycleID: uuid.New(),
		LicensePlate: "59X1-77777",
		Status:       entity.UnitStatusRented,
	}
	st.units[unit.ID] = unit

	item := &entity.RentalItem{
		BaseSimple:       entity.BaseSimple{ID: uuid.New()},
		RentalID:         rental.ID,
		MotorcycleUnitID: &unit.ID,
		Quantity:         1,
		PricePerDay:      decimal.NewFromInt(100000),
		SubTotal:         decimal.NewFromInt(300000),
	}
	st.items[item.ID] = item

	// Returned two days late; a gateway settlement of the recomputed
	// total is in flight.
	returnDate := date("2024-04-05")
	rental.Status = entity.RentalStatusRented
	rental.ActualReturnDate = &returnDate
	rental.RentalDays = 5
	rental.TotalAmount = decimal.NewFromInt(500000)
	st.rentals[rental.ID] = rental
	payment.Amount = decimal.NewFromInt(500000)
	st.payments[payment.ID] = payment

	_, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "50000000", "00"))
	require.NoError(t, err)

	reloaded := st.rentals[rental.ID]
	assert.Equal(t, entity.RentalStatusReturned, reloaded.Status)
	assert.Equal(t, entity.RentalPaymentPaid, reloaded.PaymentStatus)
	assert.True(t, reloaded.PaidAmount.Equal(decimal.NewFromInt(500000)))
	assert.True(t, reloaded.TotalAmount.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, entity.UnitStatusReady, st.units[unit.ID].Status)
}

func TestReconcileSettlementPartialKeepsRentalOpen(t *testing.T) {
	svc, st := newPaymentFixture(t)
	rental, payment := seedPendingVNPayOrder(st)

	unit := &entity.MotorcycleUnit{
		Base:         entity.Base{ID: uuid.New()},
		MotorcycleID: uuid.New(),
		LicensePlate: "59X1-66666",
		Status:       entity.UnitStatusRented,
	}
	st.units[unit.ID] = unit

	item := &entity.RentalItem{
		BaseSimple:       entity.BaseSimple{ID: uuid.New()},
		RentalID:         rental.ID,
		MotorcycleUnitID: &unit.ID,
		Quantity:         1,
		PricePerDay:      decimal.NewFromInt(100000),
		SubTotal:         decimal.NewFromInt(300000),
	}
	st.items[item.ID] = item

	returnDate := date("2024-04-05")
	rental.Status = entity.RentalStatusRented
	rental.ActualReturnDate = &returnDate
	rental.TotalAmount = decimal.NewFromInt(500000)
	st.rentals[rental.ID] = rental
	payment.Amount = decimal.NewFromInt(200000)
	st.payments[payment.ID] = payment

	_, err := svc.Reconcile(context.Background(), callbackParamsFor(payment.PaymentCode, "20000000", "00"))
	require.NoError(t, err)

	reloaded := st.rentals[rental.ID]
	assert.Equal(t, entity.RentalStatusRented, reloaded.Status)
	assert.Equal(t, entity.RentalPaymentPartial, reloaded.PaymentStatus)
	assert.True(t, reloaded.PaidAmount.Equal(decimal.NewFromInt(200000)))
	assert.Equal(t, entity.UnitStatusRented, st.units[unit.ID].Status)
}
