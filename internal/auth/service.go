package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/horvathbencetibor/booking-system-be/internal"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     RepositoryAPI
	tokenGen TokenGeneratorAPI
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI) *Service {
	return &Service{
		repo:     repo,
		tokenGen: tokenGen,
	}
}

// Authenticate validates credentials and returns a signed bearer token.
// The same error is returned whether the email is unknown or the password
// is wrong, so callers cannot probe for registered addresses.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cred, err := s.repo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	user, err := s.repo.GetPrincipal(cred.UserID)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGen.Generate(user.ID, user.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to sign token", err)
	}

	return &LoginResult{
		Token: token,
		User:  UserView{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGen.Validate(tokenString)
}

// GetPrincipal resolves a user id to the principal with its effective
// permission set. Used by the auth middleware on every request, so the
// permission graph is recomputed per request and never cached.
func (s *Service) GetPrincipal(userID int64) (*User, error) {
	return s.repo.GetPrincipal(userID)
}

// JWTTokenGenerator signs and validates HS256 bearer tokens carrying user
// id and email claims.
type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

func (j *JWTTokenGenerator) Generate(userID int64, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a stored hash against a plaintext candidate.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
