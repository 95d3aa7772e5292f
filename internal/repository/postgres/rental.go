package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, equipment_id, patron_id, duration, status, price_cents, checkout_date, due_date,
	return_date, checked_out_condition, return_condition, checkout_notes, return_notes`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rental := &domain.Rental{}
	var returnCondition, checkoutNotes, returnNotes sql.NullString
	err := row.Scan(&rental.ID, &rental.EquipmentID, &rental.PatronID, &rental.Duration, &rental.Status,
		&rental.PriceCents, &rental.CheckoutDate, &rental.DueDate, &rental.ReturnDate,
		&rental.CheckedOutCondition, &returnCondition, &checkoutNotes, &returnNotes)
	if err != nil {
		return nil, err
	}
	if returnCondition.Valid {
		rental.ReturnCondition = domain.Condition(returnCondition.String)
	}
	rental.CheckoutNotes = checkoutNotes.String
	rental.ReturnNotes = returnNotes.String
	return rental, nil
}

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `INSERT INTO rentals (equipment_id, patron_id, duration, status, price_cents, checkout_date, due_date,
	            return_date, checked_out_condition, return_condition, checkout_notes, return_notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rental.EquipmentID, rental.PatronID, rental.Duration, rental.Status, rental.PriceCents,
		rental.CheckoutDate, rental.DueDate, rental.ReturnDate, rental.CheckedOutCondition,
		nullString(string(rental.ReturnCondition)), nullString(rental.CheckoutNotes), nullString(rental.ReturnNotes)).Scan(&rental.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rental, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	eq, err := scanEquipment(r.db.QueryRowContext(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, rental.EquipmentID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	rental.Equipment = eq
	return rental, nil
}

func (r *rentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, price_cents=$2, due_date=$3, return_date=$4,
	            return_condition=$5, checkout_notes=$6, return_notes=$7
	          WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		rental.Status, rental.PriceCents, rental.DueDate, rental.ReturnDate,
		nullString(string(rental.ReturnCondition)), nullString(rental.CheckoutNotes), nullString(rental.ReturnNotes), rental.ID)
	return err
}

func (r *rentalRepository) ListByPatron(ctx context.Context, patronID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	where := `WHERE patron_id = $1`
	args := []any{patronID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}
	return r.listRentals(ctx, where, args, page, pageSize)
}

func (r *rentalRepository) ListAll(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	where := ``
	args := []any{}
	if status != "" {
		where = `WHERE status = $1`
		args = append(args, status)
	}
	return r.listRentals(ctx, where, args, page, pageSize)
}

func (r *rentalRepository) listRentals(ctx context.Context, where string, args []any, page, pageSize int32) ([]domain.Rental, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM rentals %s ORDER BY checkout_date DESC LIMIT $%d OFFSET $%d`,
		rentalColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rental)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) CountByStatus(ctx context.Context) (*domain.RentalCounts, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM rentals GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := &domain.RentalCounts{}
	for rows.Next() {
		var status domain.RentalStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		switch status {
		case domain.RentalStatusPending:
			counts.Pending = n
		case domain.RentalStatusActive:
			counts.Active = n
		case domain.RentalStatusOverdue:
			counts.Overdue = n
		case domain.RentalStatusCompleted:
			counts.Completed = n
		case domain.RentalStatusCancelled:
			counts.Cancelled = n
		}
	}
	return counts, rows.Err()
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `UPDATE rentals SET status = 'OVERDUE'
	          WHERE status = 'ACTIVE' AND due_date < $1
	          RETURNING ` + rentalColumns
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rental)
	}
	return rentals, rows.Err()
}
