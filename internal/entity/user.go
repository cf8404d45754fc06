package entity

import (
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleAdvisor Role = "Advisor"
)

// MainAdminID is the distinguished admin account created on first boot. Its
// role can never be changed and it can never be deleted.
const MainAdminID = "user-1"

type WhatsappContact struct {
	Number  string `json:"number"`
	Enabled bool   `json:"enabled"`
}

type User struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Role     Role             `json:"role"`
	Whatsapp *WhatsappContact `json:"whatsapp,omitempty"`
}

func NewUser(name, email string, role Role, whatsapp *WhatsappContact) (*User, error) {
	user := &User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Role:     role,
		Whatsapp: whatsapp,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleAdvisor {
		return errors.New("role must be Admin or Advisor")
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Clone() *User {
	copy := *u
	if u.Whatsapp != nil {
		wa := *u.Whatsapp
		copy.Whatsapp = &wa
	}
	return &copy
}
