package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
)

// fakeDB satisfies database.PgxIface for service tests. The fake
// repositories never touch SQL, so the querier methods are inert; Begin
// hands out transactions that just record their outcome.
type fakeDB struct {
	txs []*fakeTx
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	tx := &fakeTx{}
	db.txs = append(db.txs, tx)
	return tx, nil
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close()                         {}

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

// store is shared in-memory state behind the fake repositories. Reads
// hand out copies and writes store copies, so a service holding a stale
// pointer cannot leak mutations past a rolled-back transaction.
type store struct {
	rentals     map[uuid.UUID]*entity.Rental
	items       map[uuid.UUID]*entity.RentalItem
	payments    map[uuid.UUID]*entity.Payment
	units       map[uuid.UUID]*entity.MotorcycleUnit
	motorcycles map[uuid.UUID]*entity.Motorcycle
	customers   map[uuid.UUID]*entity.Customer
}

func newStore() *store {
	return &store{
		rentals:     make(map[uuid.UUID]*entity.Rental),
		items:       make(map[uuid.UUID]*entity.RentalItem),
		payments:    make(map[uuid.UUID]*entity.Payment),
		units:       make(map[uuid.UUID]*entity.MotorcycleUnit),
		motorcycles: make(map[uuid.UUID]*entity.Motorcycle),
		customers:   make(map[uuid.UUID]*entity.Customer),
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		Customer:       &fakeCustomerRepo{s},
		Motorcycle:     &fakeMotorcycleRepo{s},
		MotorcycleUnit: &fakeUnitRepo{s},
		Rental:         &fakeRentalRepo{s},
		RentalItem:     &fakeItemRepo{s},
		Payment:        &fakePaymentRepo{s},
	}
}

type fakeRentalRepo struct{ s *store }

func (r *fakeRentalRepo) Create(ctx context.Context, qx database.Querier, rental *entity.Rental) error {
	c := *rental
	r.s.rentals[rental.ID] = &c
	return nil
}

func (r *fakeRentalRepo) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Rental, error) {
	rental, ok := r.s.rentals[id]
	if !ok {
		return nil, nil
	}
	c := *rental
	return &c, nil
}

func (r *fakeRentalRepo) FindByIDForUpdate(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Rental, error) {
	return r.FindByID(ctx, qx, id)
}

func (r *fakeRentalRepo) FindByTransactionID(ctx context.Context, qx database.Querier, txnRef string) (*entity.Rental, error) {
	for _, rental := range r.s.rentals {
		if rental.VNPayTransactionID != nil && *rental.VNPayTransactionID == txnRef {
			c := *rental
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeRentalRepo) FindAll(ctx context.Context, qx database.Querier, status string, limit, offset int) ([]*entity.Rental, error) {
	var out []*entity.Rental
	for _, rental := range r.s.rentals {
		if status != "" && string(rental.Status) != status {
			continue
		}
		c := *rental
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeRentalRepo) Count(ctx context.Context, qx database.Querier, status string) (int64, error) {
	rentals, _ := r.FindAll(ctx, qx, status, 0, 0)
	return int64(len(rentals)), nil
}

func (r *fakeRentalRepo) Update(ctx context.Context, qx database.Querier, rental *entity.Rental) error {
	if _, ok := r.s.rentals[rental.ID]; !ok {
		return fmt.Errorf("rental %s not found", rental.ID.String())
	}
	c := *rental
	r.s.rentals[rental.ID] = &c
	return nil
}

func (r *fakeRentalRepo) UpdateStatus(ctx context.Context, qx database.Querier, id uuid.UUID, status entity.RentalStatus) error {
	rental, ok := r.s.rentals[id]
	if !ok {
		return fmt.Errorf("rental %s not found", id.String())
	}
	rental.Status = status
	return nil
}

func (r *fakeRentalRepo) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	delete(r.s.rentals, id)
	return nil
}

type fakeItemRepo struct{ s *store }

func (r *fakeItemRepo) Create(ctx context.Context, qx database.Querier, item *entity.RentalItem) error {
	c := *item
	r.s.items[item.ID] = &c
	return nil
}

func (r *fakeItemRepo) CreateBatch(ctx context.Context, qx database.Querier, items []*entity.RentalItem) error {
	for _, item := range items {
		if err := r.Create(ctx, qx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeItemRepo) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.RentalItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *fakeItemRepo) FindByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.RentalItem, error) {
	var out []*entity.RentalItem
	for _, item := range r.s.items {
		if item.RentalID == rentalID {
			c := *item
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindAssignedByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.RentalItem, error) {
	items, _ := r.FindByRentalID(ctx, qx, rentalID)
	var out []*entity.RentalItem
	for _, item := range items {
		if item.Assigned() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, qx database.Querier, item *entity.RentalItem) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return fmt.Errorf("rental item %s not found", item.ID.String())
	}
	c := *item
	r.s.items[item.ID] = &c
	return nil
}

type fakePaymentRepo struct{ s *store }

func (r *fakePaymentRepo) Create(ctx context.Context, qx database.Querier, payment *entity.Payment) error {
	for _, existing := range r.s.payments {
		if existing.PaymentCode == payment.PaymentCode {
			return fmt.Errorf("create payment with code %s: %w", payment.PaymentCode, repository.ErrDuplicate)
		}
	}
	c := *payment
	r.s.payments[payment.ID] = &c
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Payment, error) {
	payment, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	c := *payment
	return &c, nil
}

func (r *fakePaymentRepo) FindByCode(ctx context.Context, qx database.Querier, code string) (*entity.Payment, error) {
	for _, payment := range r.s.payments {
		if payment.PaymentCode == code {
			c := *payment
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByCodeForUpdate(ctx context.Context, qx database.Querier, code string) (*entity.Payment, error) {
	return r.FindByCode(ctx, qx, code)
}

func (r *fakePaymentRepo) FindLatestByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) (*entity.Payment, error) {
	var latest *entity.Payment
	for _, payment := range r.s.payments {
		if payment.RentalID == nil || *payment.RentalID != rentalID {
			continue
		}
		if latest == nil || payment.CreatedAt.After(latest.CreatedAt) {
			c := *payment
			latest = &c
		}
	}
	return latest, nil
}

func (r *fakePaymentRepo) FindByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, payment := range r.s.payments {
		if payment.RentalID != nil && *payment.RentalID == rentalID {
			c := *payment
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, qx database.Querier, status, method string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, payment := range r.s.payments {
		if status != "" && string(payment.PaymentStatus) != status {
			continue
		}
		if method != "" && string(payment.PaymentMethod) != method {
			continue
		}
		c := *payment
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakePaymentRepo) Count(ctx context.Context, qx database.Querier, status, method string) (int64, error) {
	payments, _ := r.FindAll(ctx, qx, status, method, 0, 0)
	return int64(len(payments)), nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, qx database.Querier, payment *entity.Payment) error {
	if _, ok := r.s.payments[payment.ID]; !ok {
		return fmt.Errorf("payment %s not found", payment.ID.String())
	}
	c := *payment
	r.s.payments[payment.ID] = &c
	return nil
}

type fakeUnitRepo struct{ s *store }

func (r *fakeUnitRepo) Create(ctx context.Context, qx database.Querier, unit *entity.MotorcycleUnit) error {
	for _, existing := range r.s.units {
		if existing.LicensePlate == unit.LicensePlate {
			return fmt.Errorf("create unit with plate %s: %w", unit.LicensePlate, repository.ErrDuplicate)
		}
	}
	c := *unit
	r.s.units[unit.ID] = &c
	return nil
}

func (r *fakeUnitRepo) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.MotorcycleUnit, error) {
	unit, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	c := *unit
	return &c, nil
}

func (r *fakeUnitRepo) FindByMotorcycleID(ctx context.Context, qx database.Querier, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error) {
	var out []*entity.MotorcycleUnit
	for _, unit := range r.s.units {
		if unit.MotorcycleID == motorcycleID {
			c := *unit
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) FindAvailableByMotorcycleID(ctx context.Context, qx database.Querier, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error) {
	units, _ := r.FindByMotorcycleID(ctx, qx, motorcycleID)
	var out []*entity.MotorcycleUnit
	for _, unit := range units {
		if unit.Status == entity.UnitStatusReady {
			out = append(out, unit)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) Update(ctx context.Context, qx database.Querier, unit *entity.MotorcycleUnit) error {
	if _, ok := r.s.units[unit.ID]; !ok {
		return fmt.Errorf("unit %s not found", unit.ID.String())
	}
	c := *unit
	r.s.units[unit.ID] = &c
	return nil
}

func (r *fakeUnitRepo) UpdateStatus(ctx context.Context, qx database.Querier, id uuid.UUID, status entity.UnitStatus) error {
	unit, ok := r.s.units[id]
	if !ok {
		return fmt.Errorf("unit %s not found", id.String())
	}
	unit.Status = status
	return nil
}

func (r *fakeUnitRepo) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	delete(r.s.units, id)
	return nil
}

type fakeMotorcycleRepo struct{ s *store }

func (r *fakeMotorcycleRepo) Create(ctx context.Context, qx database.Querier, motorcycle *entity.Motorcycle) error {
	c := *motorcycle
	r.s.motorcycles[motorcycle.ID] = &c
	return nil
}

func (r *fakeMotorcycleRepo) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Motorcycle, error) {
	motorcycle, ok := r.s.motorcycles[id]
	if !ok {
		return nil, nil
	}
	c := *motorcycle
	return &c, nil
}

func (r *fakeMotorcycleRepo) FindAll(ctx context.Context, qx database.Querier, limit, offset int) ([]*entity.Motorcycle, error) {
	var out []*entity.Motorcycle
	for _, motorcycle := range r.s.motorcycles {
		c := *motorcycle
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeMotorcycleRepo) Count(ctx context.Context, qx database.Querier) (int64, error) {
	return int64(len(r.s.motorcycles)), nil
}

func (r *fakeMotorcycleRepo) Update(ctx context.Context, qx database.Querier, motorcycle *entity.Motorcycle) error {
	if _, ok := r.s.motorcycles[motorcycle.ID]; !ok {
		return fmt.Errorf("motorcycle %s not found", motorcycle.ID.String())
	}
	c := *motorcycle
	r.s.motorcycles[motorcycle.ID] = &c
	return nil
}

func (r *fakeMotorcycleRepo) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	delete(r.s.motorcycles, id)
	return nil
}

type fakeCustomerRepo struct{ s *store }

func (r *fakeCustomerRepo) Create(ctx context.Context, qx database.Querier, customer *entity.Customer) error {
	c := *customer
	r.s.customers[customer.ID] = &c
	return nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	c := *customer
	return &c, nil
}

func (r *fakeCustomerRepo) FindByCitizenID(ctx context.Context, qx database.Querier, citizenID string) (*entity.Customer, error) {
	for _, customer := range r.s.customers {
		if customer.CitizenID != nil && *customer.CitizenID == citizenID {
			c := *customer
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindAll(ctx context.Context, qx database.Querier, search string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, customer := range r.s.customers {
		c := *customer
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context, qx database.Querier, search string) (int64, error) {
	return int64(len(r.s.customers)), nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, qx database.Querier, customer *entity.Customer) error {
	if _, ok := r.s.customers[customer.ID]; !ok {
		return fmt.Errorf("customer %s not found", customer.ID.String())
	}
	c := *customer
	r.s.customers[customer.ID] = &c
	return nil
}
