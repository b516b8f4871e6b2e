// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/refeed/internal/config"
)

// ErrInvalidCredentials is returned for an unknown user or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialChecker verifies the single configured admin login.
type CredentialChecker struct {
	username []byte
	password []byte
	hash     []byte
}

// NewCredentialChecker prefers the bcrypt hash when both a hash and a
// plaintext password are configured.
func NewCredentialChecker(cfg *config.SecurityConfig) (*CredentialChecker, error) {
	if cfg.AdminUsername == "" {
		return nil, fmt.Errorf("admin username is required")
	}
	c := &CredentialChecker{username: []byte(cfg.AdminUsername)}

	switch {
	case cfg.AdminPasswordHash != "":
		if !strings.HasPrefix(cfg.AdminPasswordHash, "$2") {
			return nil, fmt.Errorf("admin password hash is not a bcrypt hash")
		}
		c.hash = []byte(cfg.AdminPasswordHash)
	case cfg.AdminPassword != "":
		c.password = []byte(cfg.AdminPassword)
	default:
		return nil, fmt.Errorf("admin password or password hash is required")
	}
	return c, nil
}

// Username returns the configured admin username.
func (c *CredentialChecker) Username() string {
	return string(c.username)
}

// Check compares both fields without short-circuiting on the username.
func (c *CredentialChecker) Check(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), c.username) == 1

	var passOK bool
	if c.hash != nil {
		passOK = bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), c.password) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
