// Package models holds the payloads exchanged with the newsletter API.
// They are snapshots owned by the backend; the client never mutates them.
package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	Email      string    `json:"email" yaml:"email"`
	Role       Role      `json:"role" yaml:"role"`
	IsVerified bool      `json:"isVerified" yaml:"isVerified"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type OTPResponse struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	ExpiresIn string `json:"expiresIn"`
	// OTP is only echoed back by development backends.
	OTP  string `json:"otp,omitempty"`
	Note string `json:"note,omitempty"`
}

type MeResponse struct {
	User User `json:"user"`
}

type Pagination struct {
	Page  int `json:"page" yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
	Total int `json:"total" yaml:"total"`
	Pages int `json:"pages" yaml:"pages"`
}

// MessageResponse is the generic {message} acknowledgement.
type MessageResponse struct {
	Message string `json:"message" yaml:"message"`
}

type HealthStatus struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
