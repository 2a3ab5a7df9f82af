package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationCode(t *testing.T) {
	code, err := VerificationCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Regexp(t, `^[0-9A-F]{6}$`, code)
}

func TestUnusablePassword(t *testing.T) {
	p1, err := UnusablePassword()
	require.NoError(t, err)
	p2, err := UnusablePassword()
	require.NoError(t, err)

	assert.Len(t, p1, 40)
	assert.NotEqual(t, p1, p2)
}
