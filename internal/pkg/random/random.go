package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerificationCode returns a short human-typeable code: 3 random bytes,
// hex-encoded and uppercased (6 characters).
func VerificationCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// UnusablePassword returns a random 40-character hex string used as the
// stored password for externally-provisioned accounts. It is never
// communicated to anyone, so the account cannot be logged into by password.
func UnusablePassword() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random password: %w", err)
	}
	return hex.EncodeToString(b), nil
}
