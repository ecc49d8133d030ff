// Package user defines the customer identity record.
package user

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrUserNotFound is returned when a username cannot be resolved.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when registering a username that is
	// already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// User represents a bank customer. FullName and Username are immutable once
// registered; Address and Phone may be updated in place (no history kept).
// Contact mutation is guarded by a mutex because updates can race with
// concurrent reads from the reporting path.
type User struct {
	mu        sync.RWMutex
	fullName  string
	username  string
	address   string
	phone     string
	createdAt time.Time
	updatedAt time.Time
}

// New creates a User with current timestamps. Format validation (name,
// address, phone shape) belongs to the caller; only non-empty identity
// fields are required here.
func New(fullName, username, address, phone string) (*User, error) {
	if fullName == "" {
		return nil, errors.New("full name cannot be empty")
	}
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	now := time.Now().UTC()
	return &User{
		fullName:  fullName,
		username:  username,
		address:   address,
		phone:     phone,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// FullName returns the customer's full name.
func (u *User) FullName() string { return u.fullName }

// Username returns the unique username.
func (u *User) Username() string { return u.username }

// CreatedAt returns the registration time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Contact returns the current address and phone number.
func (u *User) Contact() (address, phone string) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.address, u.phone
}

// UpdateContact replaces the address and/or phone number. Empty arguments
// leave the corresponding field unchanged.
func (u *User) UpdateContact(address, phone string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if address != "" {
		u.address = address
	}
	if phone != "" {
		u.phone = phone
	}
	u.updatedAt = time.Now().UTC()
}
