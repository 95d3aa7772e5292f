package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreateByUser(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart, err := r.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart = &domain.Cart{UserID: userID}
	now := time.Now()
	query := `INSERT INTO carts (user_id, created_on, updated_on) VALUES ($1, $2, $3) RETURNING id, created_on, updated_on`
	err = r.db.QueryRowContext(ctx, query, userID, now, now).Scan(&cart.ID, &cart.CreatedOn, &cart.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) GetByUser(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart := &domain.Cart{}
	query := `SELECT id, user_id, created_on, updated_on FROM carts WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedOn, &cart.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	query := `INSERT INTO cart_items (cart_id, equipment_id, start_date, end_date, duration)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		item.CartID, item.EquipmentID, item.StartDate, item.EndDate, item.Duration).Scan(&item.ID)
}

func (r *cartRepository) GetItem(ctx context.Context, itemID int32) (*domain.CartItem, error) {
	item := &domain.CartItem{}
	query := `SELECT id, cart_id, equipment_id, start_date, end_date, duration FROM cart_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID, &item.CartID, &item.EquipmentID, &item.StartDate, &item.EndDate, &item.Duration)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *cartRepository) HasItem(ctx context.Context, cartID, equipmentID int32) (bool, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM cart_items WHERE cart_id = $1 AND equipment_id = $2`,
		cartID, equipmentID).Scan(&count)
	return count > 0, err
}

func (r *cartRepository) ListItems(ctx context.Context, cartID int32) ([]domain.CartItem, error) {
	query := `SELECT ci.id, ci.cart_id, ci.equipment_id, ci.start_date, ci.end_date, ci.duration, ` + prefixedEquipmentColumns("e") + `
	          FROM cart_items ci
	          JOIN equipment e ON e.id = ci.equipment_id
	          WHERE ci.cart_id = $1
	          ORDER BY ci.id`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		e := &domain.Equipment{}
		var subtype sql.NullString
		err := rows.Scan(
			&item.ID, &item.CartID, &item.EquipmentID, &item.StartDate, &item.EndDate, &item.Duration,
			&e.ID, &e.EquipmentID, &e.Type, &subtype, &e.Brand, &e.Model, &e.Size, &e.Location, &e.Condition,
			&e.IsAvailable, &e.IsDeleted, &e.Notes, &e.DailyRateCents, &e.WeeklyRateCents, &e.SeasonalRateCents,
			&e.TotalRentals, &e.AverageRating, &e.DateAdded, &e.LastMaintained, &e.NextMaintenanceDue)
		if err != nil {
			return nil, err
		}
		if subtype.Valid {
			e.Subtype = domain.SkiType(subtype.String)
		}
		item.Equipment = e
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartRepository) RemoveItem(ctx context.Context, itemID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	return err
}

func (r *cartRepository) Clear(ctx context.Context, cartID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
