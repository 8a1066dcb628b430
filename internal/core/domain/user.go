package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidToken = errors.New("invalid token")

// CartItem is a product reference with a quantity, embedded in the user
// document. It has no identity of its own.
type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// User models an account in the system. The cart lives inside the user
// aggregate, mirroring the document layout.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CartItems    []CartItem `json:"cart_items"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user may access admin-only routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
