package auth

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin checks the administrator password and hands out session tokens.
type Admin struct {
	passwordHash string
	tokens       *TokenIssuer
}

// NewAdmin accepts either an encoded Argon2id hash or, when the hash is empty,
// a plain password that is hashed once at startup. A malformed hash is rejected
// here with ErrInvalidHash rather than at the first login.
func NewAdmin(passwordHash, password string, tokens *TokenIssuer) (*Admin, error) {
	if passwordHash != "" {
		if err := ValidateHash(passwordHash); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
	} else {
		if password == "" {
			return nil, errors.New("an admin password or password hash is required")
		}
		hashed, err := HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		passwordHash = hashed
	}
	return &Admin{passwordHash: passwordHash, tokens: tokens}, nil
}

// Login returns a session token when password is correct.
func (a *Admin) Login(password string) (string, time.Time, error) {
	ok, err := ComparePassword(password, a.passwordHash)
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.tokens.Issue(AdminRole)
}

// Authorize checks that token is a valid admin session token.
func (a *Admin) Authorize(token string) error {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return err
	}
	if claims.Role != AdminRole {
		return ErrInvalidToken
	}
	return nil
}
