package domain

import (
	"errors"
	"time"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(name, email, passwordHash, phoneNumber string, role UserRole) (*User, error) {
	if name == "" || email == "" || passwordHash == "" {
		return nil, errors.New("invalid user data")
	}
	if role == "" {
		role = UserRoleCustomer
	}
	now := time.Now()
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PhoneNumber:  phoneNumber,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
