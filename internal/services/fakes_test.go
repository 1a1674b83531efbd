package services

import (
	"context"
	"sync"
	"time"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
)

// fakeUserRepo — in-memory репозиторий с уникальностью email, как у индекса в БД.
type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	creates int

	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.byEmail[u.Email] = &cp
	r.creates++
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

type fakeOTPRepo struct {
	mu   sync.Mutex
	recs map[string]*models.OTPCode

	// beforeIncrement вызывается без блокировки, до UPDATE
	beforeIncrement func()
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{recs: map[string]*models.OTPCode{}}
}

func (r *fakeOTPRepo) Upsert(_ context.Context, email, codeHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[email] = &models.OTPCode{Email: email, CodeHash: codeHash, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return nil
}

func (r *fakeOTPRepo) GetByEmail(_ context.Context, email string) (*models.OTPCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[email]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeOTPRepo) IncrementAttempts(_ context.Context, email string) (int, error) {
	if r.beforeIncrement != nil {
		r.beforeIncrement()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[email]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	rec.Attempts++
	return rec.Attempts, nil
}

func (r *fakeOTPRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recs, email)
	return nil
}

func (r *fakeOTPRepo) has(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.recs[email]
	return ok
}

type sentOTP struct {
	email, code string
}

type fakeMailer struct {
	mu      sync.Mutex
	otps    []sentOTP
	welcome []string
	otpErr  error
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, email)
	return nil
}

func (m *fakeMailer) SendOTPEmail(_ context.Context, email, code string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.otpErr != nil {
		return m.otpErr
	}
	m.otps = append(m.otps, sentOTP{email: email, code: code})
	return nil
}

func (m *fakeMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.otps) == 0 {
		return ""
	}
	return m.otps[len(m.otps)-1].code
}

type recordingNotifier struct {
	users []*models.User
	err   error
}

func (n *recordingNotifier) NotifySignup(_ context.Context, u *models.User) error {
	n.users = append(n.users, u)
	return n.err
}

// fakeClock — управляемое время для проверок срока жизни.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
