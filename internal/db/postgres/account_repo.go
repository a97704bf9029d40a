package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Perch/internal/core/accounts"
)

type postgresAccountRepo struct {
	db *sql.DB
}

// AccountRepository reads accounts and lets startup seed them
type AccountRepository interface {
	accounts.Repository
	Upsert(ctx context.Context, account *accounts.Account) error
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &postgresAccountRepo{db: db}
}

func (r *postgresAccountRepo) List(ctx context.Context) ([]*accounts.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, handle_tag FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*accounts.Account{}
	for rows.Next() {
		var a accounts.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.HandleTag); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return result, nil
}

func (r *postgresAccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	var a accounts.Account
	err := r.db.QueryRowContext(ctx, `SELECT id, name, handle_tag FROM accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.HandleTag)
	if err == sql.ErrNoRows {
		return nil, accounts.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// Upsert inserts or renames a seeded account
func (r *postgresAccountRepo) Upsert(ctx context.Context, account *accounts.Account) error {
	if err := accounts.Validate(*account); err != nil {
		return err
	}
	query := `
		INSERT INTO accounts (id, name, handle_tag)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, handle_tag = EXCLUDED.handle_tag
	`
	if _, err := r.db.ExecContext(ctx, query, account.ID, account.Name, account.HandleTag); err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", account.ID, err)
	}
	return nil
}
