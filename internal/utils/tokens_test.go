package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericCode(t *testing.T) {
	six := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := NewNumericCode(6)
		require.NoError(t, err)
		assert.Regexp(t, six, code)
	}
}

func TestNewNumericCode_DefaultLength(t *testing.T) {
	code, err := NewNumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	code, err = NewNumericCode(4)
	require.NoError(t, err)
	assert.Len(t, code, 4)
}
