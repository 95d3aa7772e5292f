package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type collectionRepository struct {
	db *sql.DB
}

func NewCollectionRepository(db *sql.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	query := `INSERT INTO collections (title, description, sharing_type, creator_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Title, c.Description, c.SharingType, c.CreatorID, now, now).Scan(&c.ID)
}

func (r *collectionRepository) GetByID(ctx context.Context, id int32) (*domain.Collection, error) {
	c := &domain.Collection{}
	query := `SELECT id, title, description, sharing_type, creator_id, created_on, updated_on FROM collections WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.Description, &c.SharingType, &c.CreatorID, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM collection_authorized_users WHERE collection_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var userID int32
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		c.AuthorizedUserIDs = append(c.AuthorizedUserIDs, userID)
	}
	return c, rows.Err()
}

func (r *collectionRepository) Update(ctx context.Context, c *domain.Collection) error {
	query := `UPDATE collections SET title=$1, description=$2, sharing_type=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, c.Title, c.Description, c.SharingType, time.Now(), c.ID)
	return err
}

func (r *collectionRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM collection_access_requests WHERE collection_id = $1`,
		`DELETE FROM collection_authorized_users WHERE collection_id = $1`,
		`DELETE FROM collection_items WHERE collection_id = $1`,
		`DELETE FROM collections WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *collectionRepository) ListVisible(ctx context.Context, viewer domain.Identity) ([]domain.Collection, error) {
	query := `SELECT id, title, description, sharing_type, creator_id, created_on, updated_on FROM collections`
	var args []any
	if !viewer.IsAuthenticated() {
		query += ` WHERE sharing_type = 'PUBLIC'`
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.SharingType, &c.CreatorID, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *collectionRepository) AddItem(ctx context.Context, collectionID, equipmentID int32) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO collection_items (collection_id, equipment_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		collectionID, equipmentID)
	return err
}

func (r *collectionRepository) RemoveItem(ctx context.Context, collectionID, equipmentID int32) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM collection_items WHERE collection_id = $1 AND equipment_id = $2`,
		collectionID, equipmentID)
	return err
}

func (r *collectionRepository) HasItem(ctx context.Context, collectionID, equipmentID int32) (bool, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM collection_items WHERE collection_id = $1 AND equipment_id = $2`,
		collectionID, equipmentID).Scan(&count)
	return count > 0, err
}

func (r *collectionRepository) ListItems(ctx context.Context, collectionID int32) ([]domain.Equipment, error) {
	query := `SELECT ` + prefixedEquipmentColumns("equipment") + ` FROM equipment
	          JOIN collection_items ci ON ci.equipment_id = equipment.id
	          WHERE ci.collection_id = $1 AND equipment.is_deleted = false
	          ORDER BY equipment.brand, equipment.model`
	rows, err := r.db.QueryContext(ctx, query, collectionID)
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

func (r *collectionRepository) ListForEquipment(ctx context.Context, equipmentID int32) ([]domain.Collection, error) {
	query := `SELECT c.id, c.title, c.description, c.sharing_type, c.creator_id, c.created_on, c.updated_on
	          FROM collections c
	          JOIN collection_items ci ON ci.collection_id = c.id
	          WHERE ci.equipment_id = $1`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.SharingType, &c.CreatorID, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *collectionRepository) AddAuthorizedUser(ctx context.Context, collectionID, userID int32) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO collection_authorized_users (collection_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		collectionID, userID)
	return err
}

func (r *collectionRepository) RemoveAuthorizedUser(ctx context.Context, collectionID, userID int32) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM collection_authorized_users WHERE collection_id = $1 AND user_id = $2`,
		collectionID, userID)
	return err
}
