package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/horvathbencetibor/booking-system-be/internal"
)

// User is the authenticated principal attached to a request after token
// verification. Permissions is the deduplicated effective permission set
// resolved through the role graph.
type User struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) HasAnyPermission(permissions ...string) bool {
	for _, required := range permissions {
		if u.HasPermission(required) {
			return true
		}
	}
	return false
}

// Claims are the JWT payload: user id and email.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Credential is the stored secret material for one user.
type Credential struct {
	UserID       int64
	PasswordHash string
}

// LoginResult is the login response body: a signed bearer token plus the
// public view of the user it identifies.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetPrincipal(userID int64) (*User, error)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(email string) (*Credential, error)
	GetPrincipal(userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	Generate(userID int64, email string) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// UserFromContext returns the principal stored by the auth middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(internal.ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, internal.ContextUserKey, u)
}
