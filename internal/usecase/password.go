package usecase

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"souqmanaqil/pkg/errors"
)

const bcryptPrefix = "$2"

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err == bcrypt.ErrPasswordTooLong {
		return "", errors.BadRequest("Password is too long", err)
	}
	if err != nil {
		return "", errors.Internal("Failed to secure password", err)
	}
	return string(hash), nil
}

func isHashed(stored string) bool {
	return strings.HasPrefix(stored, bcryptPrefix)
}

// checkPassword accepts bcrypt hashes and legacy plaintext credentials.
func checkPassword(stored, password string) bool {
	if isHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
