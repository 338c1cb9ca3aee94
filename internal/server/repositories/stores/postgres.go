package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/dbx"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/google/uuid"
)

const storeColumns = `id, store_name, merchant_id, location, description, items, reviews, version, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// Items and reviews are kept as JSONB arrays on the store row.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStore(row scanner) (*models.Store, error) {
	var (
		s              models.Store
		items, reviews []byte
	)
	err := row.Scan(&s.ID, &s.StoreName, &s.MerchantID, &s.Location, &s.Description,
		&items, &reviews, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeCollections(&s, items, reviews); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeCollections(s *models.Store, items, reviews []byte) error {
	s.Items = []models.StoreItem{}
	s.Reviews = []models.Review{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return fmt.Errorf("decode items of store %s: %w", s.ID, err)
		}
	}
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &s.Reviews); err != nil {
			return fmt.Errorf("decode reviews of store %s: %w", s.ID, err)
		}
	}
	// a stored JSON null decodes to a nil slice
	if s.Items == nil {
		s.Items = []models.StoreItem{}
	}
	if s.Reviews == nil {
		s.Reviews = []models.Review{}
	}
	return nil
}

func encodeJSONArray[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	return json.Marshal(v)
}

func mapRowErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) queryStore(ctx context.Context, query string, args ...any) (*models.Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapRowErr(err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, store *models.Store) (*models.Store, error) {
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	items, err := encodeJSONArray(store.Items)
	if err != nil {
		return nil, err
	}
	reviews, err := encodeJSONArray(store.Reviews)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO stores (id, store_name, merchant_id, location, description, items, reviews)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING ` + storeColumns

	created, err := r.queryStore(ctx, query,
		store.ID, store.StoreName, store.MerchantID, store.Location, store.Description, items, reviews)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Store, error) {
	return r.queryStore(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Store, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select stores: %w", err)
	}
	defer rows.Close()

	result := []*models.Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateInfo(ctx context.Context, id, storeName, location string) (*models.Store, error) {
	query :=
		`UPDATE stores SET store_name = $2, location = $3, version = version + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + storeColumns
	return r.queryStore(ctx, query, id, storeName, location)
}

func (r *PostgresRepository) UpdateDescription(ctx context.Context, id, description string) (*models.Store, error) {
	query :=
		`UPDATE stores SET description = $2, version = version + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + storeColumns
	return r.queryStore(ctx, query, id, description)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Store, error) {
	return r.queryStore(ctx, `DELETE FROM stores WHERE id = $1 RETURNING `+storeColumns, id)
}

// CompareAndSwap replaces one collection column iff version = expectedVersion.
// Zero affected rows means another writer got there first (or the store is
// gone; the caller's re-read tells the two apart).
func (r *PostgresRepository) CompareAndSwap(ctx context.Context, store *models.Store, collection models.Collection, expectedVersion int64) error {
	var (
		column  string
		payload []byte
		err     error
	)
	switch collection {
	case models.CollectionItems:
		column = "items"
		payload, err = encodeJSONArray(store.Items)
	case models.CollectionReviews:
		column = "reviews"
		payload, err = encodeJSONArray(store.Reviews)
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
	if err != nil {
		return err
	}

	query := `UPDATE stores SET ` + column + ` = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3`

	res, err := r.db.ExecContext(ctx, query, payload, store.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		store.Version = expectedVersion + 1
		return nil
	case 0:
		return common.ErrVersionConflict
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
