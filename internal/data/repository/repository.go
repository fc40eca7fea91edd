package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"go.uber.org/zap"
)

// ErrDuplicate marks a unique-constraint violation (payment codes,
// license plates). Callers may regenerate the conflicting value and
// retry.
var ErrDuplicate = errors.New("duplicate key")

// isUniqueViolation reports Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type Repository struct {
	Customer       CustomerRepository
	Motorcycle     MotorcycleRepository
	MotorcycleUnit MotorcycleUnitRepository
	Rental         RentalRepository
	RentalItem     RentalItemRepository
	Payment        PaymentRepository
	Article        ArticleRepository
	StoreInfo      StoreInfoRepository
}

// NewRepository wires every repository. Repositories do not hold a
// connection: each method takes an explicit Querier so the same call
// runs against the pool or inside a caller-owned transaction.
func NewRepository(log *zap.Logger) *Repository {
	return &Repository{
		Customer:       NewCustomerRepository(log),
		Motorcycle:     NewMotorcycleRepository(log),
		MotorcycleUnit: NewMotorcycleUnitRepository(log),
		Rental:         NewRentalRepository(log),
		RentalItem:     NewRentalItemRepository(log),
		Payment:        NewPaymentRepository(log),
		Article:        NewArticleRepository(log),
		StoreInfo:      NewStoreInfoRepository(log),
	}
}
