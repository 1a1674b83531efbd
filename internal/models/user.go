package models

import "time"

type User struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	PasswordHash   *string    `json:"-"` // nil для Google-аккаунтов
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Country        string     `json:"country"`
	About          string     `json:"about"`
	ProfilePicture *string    `json:"profilePicture,omitempty"`
	IsGoogleUser   bool       `json:"isGoogleUser"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Country     string `json:"country" validate:"required,max=100"`
	About       string `json:"about" validate:"max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult намеренно без пароля и прочих полей пользователя.
type LoginResult struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
