package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/georges-crm-sync/internal/entity"
)

type PostgresUserRepository struct {
	DB *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(job, ''), COALESCE(stripe_plan, '') <> ''
		FROM users
		WHERE id = $1
	`

	var row userRow
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&row.ID,
		&row.Email,
		&row.Phone,
		&row.Job,
		&row.Subscribed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	count, err := r.CountBankAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toUser(row, count), nil
}

func (r *PostgresUserRepository) CountBankAccounts(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bank_accounts WHERE id_user = $1`, userID).Scan(&count)
	return count, err
}
