package user

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Balance      float64   `db:"balance" json:"balance"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Roles returns the role tags of the user in the shape the API exposes.
func (u *User) Roles() []string {
	return []string{u.Role}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	User         string `json:"user" example:"user@mail.ru"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type CurrentUserResponse struct {
	Username string   `json:"username" example:"user@mail.ru"`
	Roles    []string `json:"roles"`
	Balance  float64  `json:"balance" example:"1250.99"`
}
