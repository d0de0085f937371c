package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// PasswordHasher turns a password into its stored form and checks a
// candidate against a stored value.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored, candidate string) bool
}

// NewPasswordHasher returns the hasher for scheme. An empty scheme selects
// plain storage.
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", HashingPlain:
		return PlainHasher{}, nil
	case HashingBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing scheme %q", scheme)
	}
}

// PlainHasher stores passwords as given and compares them verbatim.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Matches(stored, candidate string) bool { return stored == candidate }

// BcryptHasher stores bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptHasher) Matches(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
