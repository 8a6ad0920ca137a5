package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// applyPepper mixes the configured pepper into the password via HMAC-SHA256
// before bcrypt. The step always runs, even with an empty pepper: bcrypt
// rejects inputs over 72 bytes, and the HMAC fixes the length at 32.
func applyPepper(password, pepper string) []byte {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// hashPassword hashes a plaintext password with bcrypt. bcrypt embeds a
// per-record salt in the digest.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plaintext password against a stored digest.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}

// generateSessionToken returns an opaque bearer token with 256 bits of
// entropy, hex encoded.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
