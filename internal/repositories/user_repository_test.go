package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountsvc/internal/models"
)

var userCols = []string{
	"id", "first_name", "last_name", "email", "password_hash", "date_of_birth",
	"country", "about", "profile_picture", "is_google_user", "created_at",
}

func newUserRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewUserRepository(db), mock, db
}

func TestUserCreate_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	hash := "$2a$10$hash"
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users\s*\(.*\)\s*VALUES\s*\(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10\)\s*RETURNING\s+created_at\s*$`).
		WithArgs("u-1", "Ada", "Lovelace", "ada@example.com", hash, sqlmock.AnyArg(), "UK", "", nil, false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	u := &models.User{
		ID:           "u-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: &hash,
		Country:      "UK",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{ID: "u-1", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserCreate_DBError(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.User{ID: "u-1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "user create: db down")
}

func TestUserGetByEmail_Found(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "Ada", "Lovelace", "ada@example.com", "$2a$hash", dob, "UK", "math", nil, false, time.Now())
	mock.ExpectQuery(`(?s)SELECT.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.PasswordHash)
	assert.Equal(t, "$2a$hash", *u.PasswordHash)
	require.NotNil(t, u.DateOfBirth)
	assert.True(t, u.DateOfBirth.Equal(dob))
	assert.Nil(t, u.ProfilePicture)
	assert.False(t, u.IsGoogleUser)
}

func TestUserGetByEmail_GoogleUserNullPassword(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userCols).
		AddRow("u-2", "Grace", "Hopper", "grace@example.com", nil, nil, "", "", "https://pic", true, time.Now())
	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Nil(t, u.PasswordHash)
	assert.Nil(t, u.DateOfBirth)
	require.NotNil(t, u.ProfilePicture)
	assert.Equal(t, "https://pic", *u.ProfilePicture)
	assert.True(t, u.IsGoogleUser)
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetByID(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userCols).
		AddRow("u-3", "Alan", "Turing", "alan@example.com", nil, nil, "UK", "", nil, true, time.Now())
	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-3").
		WillReturnRows(rows)

	u, err := repo.GetByID(context.Background(), "u-3")
	require.NoError(t, err)
	assert.Equal(t, "alan@example.com", u.Email)
}
