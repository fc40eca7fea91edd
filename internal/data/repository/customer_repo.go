package repository

import (
	"context"
	"fmt"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, qx database.Querier, customer *entity.Customer) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Customer, error)
	FindByCitizenID(ctx context.Context, qx database.Querier, citizenID string) (*entity.Customer, error)
	FindAll(ctx context.Context, qx database.Querier, search string, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context, qx database.Querier, search string) (int64, error)
	Update(ctx context.Context, qx database.Querier, customer *entity.Customer) error
}

type customerRepository struct {
	log *zap.Logger
}

func NewCustomerRepository(log *zap.Logger) CustomerRepository {
	return &customerRepository{
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, full_name, phone, email, date_of_birth, hometown, address, citizen_id,
		citizen_id_front_image, citizen_id_back_image, driver_license_number, driver_license_image,
		created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.Phone,
		&c.Email,
		&c.DateOfBirth,
		&c.Hometown,
		&c.Address,
		&c.CitizenID,
		&c.CitizenIDFrontImage,
		&c.CitizenIDBackImage,
		&c.DriverLicenseNumber,
		&c.DriverLicenseImage,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, qx database.Querier, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, phone, email, date_of_birth, hometown, address, citizen_id,
			citizen_id_front_image, citizen_id_back_image, driver_license_number, driver_license_image,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := qx.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Phone,
		customer.Email,
		customer.DateOfBirth,
		customer.Hometown,
		customer.Address,
		customer.CitizenID,
		customer.CitizenIDFrontImage,
		customer.CitizenIDBackImage,
		customer.DriverLicenseNumber,
		customer.DriverLicenseImage,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create customer: %w", ErrDuplicate)
		}
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("full_name", customer.FullName),
		)
		return fmt.Errorf("create customer %s: %w", customer.FullName, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

func (r *customerRepository) FindByCitizenID(ctx context.Context, qx database.Querier, citizenID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE citizen_id = $1`

	customer, err := scanCustomer(qx.QueryRow(ctx, query, citizenID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by citizen ID", zap.Error(err))
		return nil, fmt.Errorf("find customer by citizen ID: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context, qx database.Querier, search string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if search != "" {
		query += ` WHERE full_name ILIKE $1 OR phone ILIKE $1 OR citizen_id ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := qx.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

func (r *customerRepository) Count(ctx context.Context, qx database.Querier, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`
	args := []any{}
	if search != "" {
		query += ` WHERE full_name ILIKE $1 OR phone ILIKE $1 OR citizen_id ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int64
	if err := qx.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return total, nil
}

func (r *customerRepository) Update(ctx context.Context, qx database.Querier, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, phone = $3, email = $4, date_of_birth = $5, hometown = $6,
		    address = $7, citizen_id = $8, citizen_id_front_image = $9, citizen_id_back_image = $10,
		    driver_license_number = $11, driver_license_image = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Phone,
		customer.Email,
		customer.DateOfBirth,
		customer.Hometown,
		customer.Address,
		customer.CitizenID,
		customer.CitizenIDFrontImage,
		customer.CitizenIDBackImage,
		customer.DriverLicenseNumber,
		customer.DriverLicenseImage,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", customer.ID.String())
	}

	return nil
}
