package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/globallaw/crm-backend/internal/entity"
)

// LedgerRepository persists the set of external lead ids that were already
// imported. The primary key is the dedup guarantee: two imports of the same
// lead cannot both insert.
type LedgerRepository struct {
	DB *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// EnsureSchema creates the ledger table on first boot. The rest of the app
// state is in-memory; this table is the only thing that must survive.
func (r *LedgerRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS imported_leads (
			lead_id     TEXT PRIMARY KEY,
			imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *LedgerRepository) Add(ctx context.Context, leadID string) error {
	query := `
		INSERT INTO imported_leads (lead_id, imported_at)
		VALUES ($1, NOW())
	`

	_, err := r.DB.ExecContext(ctx, query, leadID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return entity.ErrLeadAlreadyImported
			}
		}

		log.Printf("ledger insert failed: %v", err)
		return err
	}

	return nil
}

func (r *LedgerRepository) Remove(ctx context.Context, leadID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM imported_leads WHERE lead_id = $1`, leadID)
	return err
}

func (r *LedgerRepository) Contains(ctx context.Context, leadID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM imported_leads WHERE lead_id = $1)`, leadID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *LedgerRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT lead_id FROM imported_leads ORDER BY imported_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
