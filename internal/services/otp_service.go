package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"accountsvc/internal/repositories"
	"accountsvc/internal/utils"
)

type OTPStatus int

const (
	OTPValid OTPStatus = iota
	OTPExpired
	OTPInvalid
)

func (s OTPStatus) String() string {
	switch s {
	case OTPValid:
		return "valid"
	case OTPExpired:
		return "expired"
	default:
		return "invalid"
	}
}

const (
	otpDigits          = 6
	defaultOTPTTL      = 5 * time.Minute
	MismatchRetry      = "retry"
	MismatchInvalidate = "invalidate"
)

// OTPPolicy — срок жизни кода и поведение при неверном вводе.
// MaxAttempts == 0 — без ограничения (до истечения срока).
type OTPPolicy struct {
	TTL                  time.Duration
	MaxAttempts          int
	InvalidateOnMismatch bool
}

type OTPService interface {
	Generate() (string, error)
	Save(ctx context.Context, email, code string) error
	SendByEmail(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) (OTPStatus, error)
}

type otpService struct {
	repo   repositories.OTPRepository
	hasher PasswordHasher
	emails EmailService
	policy OTPPolicy
	now    func() time.Time
}

func NewOTPService(repo repositories.OTPRepository, hasher PasswordHasher, emails EmailService, policy OTPPolicy) OTPService {
	return newOTPService(repo, hasher, emails, policy, time.Now)
}

func newOTPService(repo repositories.OTPRepository, hasher PasswordHasher, emails EmailService, policy OTPPolicy, now func() time.Time) *otpService {
	if policy.TTL <= 0 {
		policy.TTL = defaultOTPTTL
	}
	return &otpService{
		repo:   repo,
		hasher: hasher,
		emails: emails,
		policy: policy,
		now:    now,
	}
}

func (s *otpService) Generate() (string, error) {
	code, err := utils.NewNumericCode(otpDigits)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return code, nil
}

// Save хранит только bcrypt-хэш кода; прежний неиспользованный код перезаписывается.
func (s *otpService) Save(ctx context.Context, email, code string) error {
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return err
	}
	return s.repo.Upsert(ctx, email, hash, s.now().Add(s.policy.TTL))
}

func (s *otpService) SendByEmail(ctx context.Context, email, code string) error {
	if err := s.emails.SendOTPEmail(ctx, email, code, s.policy.TTL); err != nil {
		return err
	}
	log.Printf("[otp][send] ok email=%s", email)
	return nil
}

func (s *otpService) Verify(ctx context.Context, email, code string) (OTPStatus, error) {
	rec, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return OTPInvalid, err
	}
	if rec == nil {
		return OTPInvalid, nil
	}

	if s.now().After(rec.ExpiresAt) {
		if err := s.repo.Delete(ctx, email); err != nil {
			return OTPExpired, err
		}
		return OTPExpired, nil
	}

	if !s.hasher.Compare(code, rec.CodeHash) {
		return OTPInvalid, s.onMismatch(ctx, email)
	}

	// код одноразовый
	if err := s.repo.Delete(ctx, email); err != nil {
		return OTPInvalid, err
	}
	log.Printf("[otp][verify] ok email=%s", email)
	return OTPValid, nil
}

func (s *otpService) onMismatch(ctx context.Context, email string) error {
	if s.policy.InvalidateOnMismatch {
		log.Printf("[otp][verify] mismatch, code invalidated email=%s", email)
		return s.repo.Delete(ctx, email)
	}
	if s.policy.MaxAttempts <= 0 {
		return nil
	}
	attempts, err := s.repo.IncrementAttempts(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		// код уже погашен параллельной проверкой
		return nil
	}
	if err != nil {
		return err
	}
	if attempts >= s.policy.MaxAttempts {
		log.Printf("[otp][verify] too many attempts email=%s attempts=%d", email, attempts)
		return s.repo.Delete(ctx, email)
	}
	return nil
}
