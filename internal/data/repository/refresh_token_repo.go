package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/data/entity"
	"product-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RefreshTokenRepository interface {
	// Replace deletes any token held by token.Email and inserts token, in one transaction.
	Replace(ctx context.Context, token *entity.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	FindByEmail(ctx context.Context, email string) (*entity.RefreshToken, error)
	ExistsByToken(ctx context.Context, token string) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByEmail(ctx context.Context, email string) error
}

type refreshTokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRefreshTokenRepository(db database.PgxIface, log *zap.Logger) RefreshTokenRepository {
	return &refreshTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "refresh_token")),
	}
}

func (r *refreshTokenRepository) Replace(ctx context.Context, token *entity.RefreshToken) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// Serialises logins for one email; the lock is released at commit or rollback.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, token.Email); err != nil {
			return fmt.Errorf("lock refresh token subject: %w", err)
		}

		deleted, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE email = $1`, token.Email)
		if err != nil {
			return fmt.Errorf("delete previous refresh token: %w", err)
		}
		if deleted.RowsAffected() > 0 {
			r.log.Info("Previous refresh token removed", zap.String("email", token.Email))
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO refresh_tokens (id, token, email, expires_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			token.ID,
			token.Token,
			token.Email,
			token.ExpiresAt,
			token.CreatedAt,
			token.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert refresh token: %w", err)
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to replace refresh token",
			zap.Error(err),
			zap.String("email", token.Email),
		)
		return fmt.Errorf("replace refresh token for %s: %w", token.Email, err)
	}

	return nil
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	query := `
		SELECT id, token, email, expires_at, created_at, updated_at
		FROM refresh_tokens
		WHERE token = $1
	`

	rt, err := scanRefreshToken(r.db.QueryRow(ctx, query, token))
	if err != nil {
		r.log.Error("Failed to find refresh token", zap.Error(err))
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return rt, nil
}

func (r *refreshTokenRepository) FindByEmail(ctx context.Context, email string) (*entity.RefreshToken, error) {
	query := `
		SELECT id, token, email, expires_at, created_at, updated_at
		FROM refresh_tokens
		WHERE email = $1
	`

	rt, err := scanRefreshToken(r.db.QueryRow(ctx, query, email))
	if err != nil {
		r.log.Error("Failed to find refresh token by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find refresh token by email %s: %w", email, err)
	}
	return rt, nil
}

func (r *refreshTokenRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token = $1)`, token).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check refresh token", zap.Error(err))
		return false, fmt.Errorf("check refresh token: %w", err)
	}
	return exists, nil
}

func (r *refreshTokenRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete refresh token", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete refresh token %s: %w", id.String(), err)
	}
	return nil
}

// DeleteByEmail is idempotent
func (r *refreshTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE email = $1`, email); err != nil {
		r.log.Error("Failed to delete refresh token by email", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("delete refresh token for %s: %w", email, err)
	}
	return nil
}

func scanRefreshToken(row pgx.Row) (*entity.RefreshToken, error) {
	var rt entity.RefreshToken
	err := row.Scan(
		&rt.ID,
		&rt.Token,
		&rt.Email,
		&rt.ExpiresAt,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
