package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accountsvc/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, first_name, last_name, email, password_hash, date_of_birth,
	country, about, profile_picture, is_google_user, created_at`

// Create вставляет пользователя. Уникальность email гарантирует индекс users_email_key.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (
			id, first_name, last_name, email, password_hash, date_of_birth,
			country, about, profile_picture, is_google_user
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.DateOfBirth,
		user.Country,
		user.About,
		user.ProfilePicture,
		user.IsGoogleUser,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	q := `SELECT` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		passwordHash sql.NullString
		dateOfBirth  sql.NullTime
		picture      sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &passwordHash, &dateOfBirth,
		&u.Country, &u.About, &picture, &u.IsGoogleUser, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if passwordHash.Valid {
		s := passwordHash.String
		u.PasswordHash = &s
	}
	if dateOfBirth.Valid {
		t := dateOfBirth.Time
		u.DateOfBirth = &t
	}
	if picture.Valid {
		s := picture.String
		u.ProfilePicture = &s
	}
	return u, nil
}
