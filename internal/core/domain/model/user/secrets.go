package user

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	verificationCodeMin = 1000
	verificationCodeMax = 9999
	resetTokenBytes     = 16
)

// GenerateVerificationCode returns a random 4-digit e-mail verification code.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(verificationCodeMax-verificationCodeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+verificationCodeMin), nil
}

// GenerateResetToken returns a random password-reset token to be mailed to the user
// and the hash under which it is stored.
func GenerateResetToken() (token string, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

// HashResetToken is the SHA-256 hex digest a reset token is looked up by.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
