package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

const saltBytes = 32

// hashPassword computes the stored digest for a password: HMAC-SHA512 keyed
// by the user's salt, hex encoded. Deterministic for a given (password, salt)
// pair so stored credentials verify across restarts.
func hashPassword(password, salt string) string {
	mac := hmac.New(sha512.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyPassword compares a candidate password against stored auth info in
// constant time.
func verifyPassword(password string, info domain.AuthInfo) bool {
	return hmac.Equal([]byte(hashPassword(password, info.Salt)), []byte(info.Hash))
}

// newSalt returns a fresh cryptographically random salt, base64 encoded.
func newSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// newUserRecord assembles an unsaved user with freshly salted credentials.
// An empty role defaults to user.
func newUserRecord(email, password string, role domain.Role) (*domain.User, error) {
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		Email: email,
		Role:  role,
		AuthInfo: domain.AuthInfo{
			Salt: salt,
			Hash: hashPassword(password, salt),
		},
	}, nil
}
