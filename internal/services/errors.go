package services

import (
	"errors"
	"net/http"
)

// CustomError — классифицированная ошибка: сообщение для клиента и HTTP-статус.
// Всё, что не CustomError, граница считает внутренней ошибкой.
type CustomError struct {
	Message    string
	StatusCode int
}

func (e *CustomError) Error() string { return e.Message }

func NewCustomError(message string, statusCode int) *CustomError {
	return &CustomError{Message: message, StatusCode: statusCode}
}

func badRequest(message string) error {
	return NewCustomError(message, http.StatusBadRequest)
}

// AsCustomError достаёт CustomError из цепочки ошибок.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

const (
	MsgEmailRegistered    = "email Already registered"
	MsgOTPEmailRegistered = "Email already Registered"
	MsgInvalidEmail       = "Invalid Email id"
	MsgInvalidPassword    = "Invalid Password"
	MsgGoogleNoEmail      = "Google account has no email"
	MsgOTPExpired         = "OTP has expired. Please request a new one."
	MsgOTPInvalid         = "Invalid OTP. Please check the code and try again."
	MsgInvalidRefresh     = "Invalid refresh token"
	MsgUserNotFound       = "User not found"
)

var ErrInvalidToken = errors.New("invalid token")
