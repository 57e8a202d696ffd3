package models

// User roles.
const (
	RoleBuyer = "buyer"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a user in the system
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Not serialized
	Role         string `json:"role"`
	Phone        string `json:"phone,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the body of PUT /profile.
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=2"`
	Phone    string `json:"phone,omitempty"`
}
