package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	// GoogleRegister возвращает только access-токен (без refresh), как и раньше.
	GoogleRegister(ctx context.Context, profile *models.GoogleProfile) (string, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) error
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users    repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	otp      OTPService
	emails   EmailService
	notifier SignupNotifier
}

func NewAuthService(
	users repositories.UserRepository,
	hasher PasswordHasher,
	tokens TokenService,
	otp OTPService,
	emails EmailService,
	notifier SignupNotifier,
) AuthService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &authService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		otp:      otp,
		emails:   emails,
		notifier: notifier,
	}
}

func (s *authService) Register(ctx context.Context, in *models.RegisterRequest) (*models.RegisterResult, error) {
	// запрос вызывающего не трогаем
	req := *in
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	email := req.Email

	exists, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, badRequest(MsgEmailRegistered)
	}

	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("%q must be a date in YYYY-MM-DD format", "dateOfBirth"))
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: &hashed,
		DateOfBirth:  &dob,
		Country:      strings.TrimSpace(req.Country),
		About:        req.About,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// параллельная регистрация того же email: ловим уникальный индекс
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, badRequest(MsgEmailRegistered)
		}
		return nil, err
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}
	log.Printf("[auth][register] created user_id=%s email=%q", user.ID, email)

	s.afterSignup(ctx, user)

	return &models.RegisterResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *authService) Login(ctx context.Context, in *models.LoginRequest) (*models.LoginResult, error) {
	req := *in
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	email := req.Email
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, badRequest(MsgInvalidEmail)
	}
	if err != nil {
		return nil, err
	}

	// у Google-аккаунта пароля нет
	if user.PasswordHash == nil || !s.hasher.Compare(req.Password, *user.PasswordHash) {
		log.Printf("[auth][login] password mismatch user_id=%s", user.ID)
		return nil, badRequest(MsgInvalidPassword)
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}
	log.Printf("[auth][login] success user_id=%s", user.ID)

	return &models.LoginResult{
		ID:           user.ID,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *authService) GoogleRegister(ctx context.Context, profile *models.GoogleProfile) (string, error) {
	email := normalizeEmail(profile.FirstEmail())
	if email == "" {
		return "", badRequest(MsgGoogleNoEmail)
	}
	if err := validateRequest(&models.SendOTPRequest{Email: email}); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.createGoogleUser(ctx, email, profile)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	}

	token, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return "", err
	}
	log.Printf("[auth][google] ok user_id=%s", user.ID)
	return token, nil
}

func (s *authService) createGoogleUser(ctx context.Context, email string, profile *models.GoogleProfile) (*models.User, error) {
	firstName, lastName := splitDisplayName(profile.DisplayName)
	user := &models.User{
		ID:             uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		ProfilePicture: profile.FirstPhoto(),
		IsGoogleUser:   true,
	}
	err := s.users.Create(ctx, user)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		// кто-то успел создать раньше нас
		return s.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[auth][google] created user_id=%s email=%q", user.ID, email)
	s.afterSignup(ctx, user)
	return user, nil
}

// splitDisplayName: первое слово — имя, остальное — фамилия.
func splitDisplayName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (s *authService) SendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validateRequest(&models.SendOTPRequest{Email: email}); err != nil {
		return err
	}

	exists, err := s.emailTaken(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return badRequest(MsgOTPEmailRegistered)
	}

	code, err := s.otp.Generate()
	if err != nil {
		return err
	}
	if err := s.otp.Save(ctx, email, code); err != nil {
		return err
	}
	return s.otp.SendByEmail(ctx, email, code)
}

func (s *authService) VerifyOTP(ctx context.Context, in *models.VerifyOTPRequest) error {
	req := *in
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(&req); err != nil {
		return err
	}
	status, err := s.otp.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		return err
	}
	switch status {
	case OTPValid:
		return nil
	case OTPExpired:
		return badRequest(MsgOTPExpired)
	default:
		return badRequest(MsgOTPInvalid)
	}
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if err := validateRequest(&models.RefreshRequest{RefreshToken: refreshToken}); err != nil {
		return nil, err
	}
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, badRequest(MsgInvalidRefresh)
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, badRequest(MsgInvalidRefresh)
	}
	if err != nil {
		return nil, err
	}
	return s.issuePair(user.ID)
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NewCustomError(MsgUserNotFound, http.StatusNotFound)
	}
	return user, err
}

func (s *authService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *authService) issuePair(userID string) (*models.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// afterSignup — приветственное письмо и уведомление; ошибки только логируем.
func (s *authService) afterSignup(ctx context.Context, user *models.User) {
	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
			log.Printf("[auth][signup] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	if err := s.notifier.NotifySignup(ctx, user); err != nil {
		log.Printf("[auth][signup] warning: notify failed for user_id=%s: %v", user.ID, err)
	}
}
