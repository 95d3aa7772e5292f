package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, equipment_id, equipment_type, equipment_subtype, brand, model, size, location, condition,
	is_available, is_deleted, notes, daily_rate_cents, weekly_rate_cents, seasonal_rate_cents,
	total_rentals, average_rating, date_added, last_maintained, next_maintenance_due`

// prefixedEquipmentColumns qualifies the equipment column list with a table
// alias for use in joins.
func prefixedEquipmentColumns(alias string) string {
	cols := strings.Split(equipmentColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	var subtype sql.NullString
	err := row.Scan(&e.ID, &e.EquipmentID, &e.Type, &subtype, &e.Brand, &e.Model, &e.Size, &e.Location, &e.Condition,
		&e.IsAvailable, &e.IsDeleted, &e.Notes, &e.DailyRateCents, &e.WeeklyRateCents, &e.SeasonalRateCents,
		&e.TotalRentals, &e.AverageRating, &e.DateAdded, &e.LastMaintained, &e.NextMaintenanceDue)
	if err != nil {
		return nil, err
	}
	if subtype.Valid {
		e.Subtype = domain.SkiType(subtype.String)
	}
	return e, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (equipment_id, equipment_type, equipment_subtype, brand, model, size, location, condition,
	            is_available, is_deleted, notes, daily_rate_cents, weekly_rate_cents, seasonal_rate_cents,
	            total_rentals, average_rating, date_added, last_maintained, next_maintenance_due)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		e.EquipmentID, e.Type, nullString(string(e.Subtype)), e.Brand, e.Model, e.Size, e.Location, e.Condition,
		e.IsAvailable, e.IsDeleted, e.Notes, e.DailyRateCents, e.WeeklyRateCents, e.SeasonalRateCents,
		e.TotalRentals, e.AverageRating, now, now, e.NextMaintenanceDue).Scan(&e.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET equipment_type=$1, equipment_subtype=$2, brand=$3, model=$4, size=$5, location=$6,
	            condition=$7, is_available=$8, is_deleted=$9, notes=$10, daily_rate_cents=$11, weekly_rate_cents=$12,
	            seasonal_rate_cents=$13, total_rentals=$14, average_rating=$15, last_maintained=$16, next_maintenance_due=$17
	          WHERE id=$18`
	_, err := r.db.ExecContext(ctx, query,
		e.Type, nullString(string(e.Subtype)), e.Brand, e.Model, e.Size, e.Location,
		e.Condition, e.IsAvailable, e.IsDeleted, e.Notes, e.DailyRateCents, e.WeeklyRateCents,
		e.SeasonalRateCents, e.TotalRentals, e.AverageRating, time.Now(), e.NextMaintenanceDue, e.ID)
	return err
}

func (r *equipmentRepository) SoftDelete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE equipment SET is_deleted = true, is_available = false WHERE id = $1`, id)
	return err
}

// HardDelete removes the equipment row together with every dependent row.
// The whole cascade runs in one transaction so a storage failure midway
// never leaves a partial delete behind.
func (r *equipmentRepository) HardDelete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM rentals WHERE equipment_id = $1`,
		`DELETE FROM equipment_images WHERE equipment_id = $1`,
		`DELETE FROM reviews WHERE equipment_id = $1`,
		`DELETE FROM collection_items WHERE equipment_id = $1`,
		`DELETE FROM cart_items WHERE equipment_id = $1`,
		`DELETE FROM equipment WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("cascade delete failed: %w", err)
		}
	}
	return tx.Commit()
}

// visibilityClause restricts a query to equipment the viewer may see: not
// in any private collection, or in a private collection the viewer created
// or is authorized on. The viewer's user id is bound to the given
// placeholder index.
func visibilityClause(arg int) string {
	return fmt.Sprintf(`(
	    NOT EXISTS (
	        SELECT 1 FROM collection_items ci
	        JOIN collections c ON c.id = ci.collection_id
	        WHERE ci.equipment_id = equipment.id AND c.sharing_type = 'PRIVATE')
	    OR EXISTS (
	        SELECT 1 FROM collection_items ci
	        JOIN collections c ON c.id = ci.collection_id
	        WHERE ci.equipment_id = equipment.id AND c.sharing_type = 'PRIVATE'
	          AND (c.creator_id = $%d OR EXISTS (
	              SELECT 1 FROM collection_authorized_users cau
	              WHERE cau.collection_id = c.id AND cau.user_id = $%d)))
	)`, arg, arg)
}

func (r *equipmentRepository) ListVisible(ctx context.Context, viewer domain.Identity, page, pageSize int32) ([]domain.Equipment, int32, error) {
	where := `WHERE is_deleted = false`
	args := []any{}
	if !viewer.IsLibrarian() {
		where += ` AND ` + visibilityClause(1)
		args = append(args, viewer.UserID)
	}

	var count int32
	countQuery := `SELECT count(*) FROM equipment ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM equipment %s ORDER BY date_added DESC LIMIT $%d OFFSET $%d`,
		equipmentColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	return items, count, rows.Err()
}

func (r *equipmentRepository) SearchVisible(ctx context.Context, viewer domain.Identity, query string, limit int32) ([]domain.Equipment, error) {
	where := `WHERE is_deleted = false
	  AND (brand ILIKE $1 OR model ILIKE $1 OR equipment_type::text ILIKE $1 OR notes ILIKE $1)`
	args := []any{"%" + query + "%"}
	if !viewer.IsLibrarian() {
		where += ` AND ` + visibilityClause(2)
		args = append(args, viewer.UserID)
	}

	sqlQuery := fmt.Sprintf(`SELECT %s FROM equipment %s ORDER BY brand, model LIMIT $%d`,
		equipmentColumns, where, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) IsVisible(ctx context.Context, viewer domain.Identity, id int32) (bool, error) {
	if viewer.IsLibrarian() {
		return true, nil
	}
	query := `SELECT count(*) FROM equipment WHERE id = $2 AND is_deleted = false AND ` + visibilityClause(1)
	var count int32
	if err := r.db.QueryRowContext(ctx, query, viewer.UserID, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *equipmentRepository) AddImage(ctx context.Context, img *domain.EquipmentImage) error {
	query := `INSERT INTO equipment_images (equipment_id, url, caption, display_order, uploaded_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, img.EquipmentID, img.URL, img.Caption, img.Order, time.Now()).Scan(&img.ID)
}

func (r *equipmentRepository) GetImages(ctx context.Context, equipmentID int32) ([]domain.EquipmentImage, error) {
	query := `SELECT id, equipment_id, url, caption, display_order, uploaded_on
	          FROM equipment_images WHERE equipment_id = $1 ORDER BY display_order`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.EquipmentImage
	for rows.Next() {
		var img domain.EquipmentImage
		if err := rows.Scan(&img.ID, &img.EquipmentID, &img.URL, &img.Caption, &img.Order, &img.UploadedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *equipmentRepository) DeleteImage(ctx context.Context, imageID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM equipment_images WHERE id = $1`, imageID)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
