package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"accountsvc/internal/models"
)

type OTPRepository interface {
	// Upsert перезаписывает прежний код для email и обнуляет попытки.
	Upsert(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	GetByEmail(ctx context.Context, email string) (*models.OTPCode, error)
	// IncrementAttempts возвращает ErrNotFound, если кода уже нет.
	IncrementAttempts(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

func (r *otpRepository) Upsert(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	const q = `
		INSERT INTO otp_codes (email, code_hash, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, 0, NOW())
		ON CONFLICT (email) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
		    expires_at = EXCLUDED.expires_at,
		    attempts = 0,
		    created_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, q, email, codeHash, expiresAt); err != nil {
		return fmt.Errorf("otp upsert: %w", err)
	}
	return nil
}

// GetByEmail — nil, nil если записи нет.
func (r *otpRepository) GetByEmail(ctx context.Context, email string) (*models.OTPCode, error) {
	const q = `
		SELECT email, code_hash, expires_at, attempts, created_at
		FROM otp_codes
		WHERE email = $1
	`
	var v models.OTPCode
	err := r.DB.QueryRowContext(ctx, q, email).Scan(&v.Email, &v.CodeHash, &v.ExpiresAt, &v.Attempts, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("otp get: %w", err)
	}
	return &v, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	const q = `
		UPDATE otp_codes
		SET attempts = attempts + 1
		WHERE email = $1
		RETURNING attempts
	`
	var attempts int
	err := r.DB.QueryRowContext(ctx, q, email).Scan(&attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("otp increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM otp_codes WHERE email = $1`, email); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}
