package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewNumericCode — криптостойкий цифровой код фиксированной длины (с ведущими нулями).
func NewNumericCode(digits int) (string, error) {
	if digits <= 0 {
		digits = 6 // по умолчанию 6 цифр
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
