// Package auth contains registration, login and token validation.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/jwt"
	"github.com/magabrotheeeer/city-classifieds/internal/lib/password"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// UserRepository is the storage contract for accounts.
type UserRepository interface {
	// RegisterUser saves a new user and returns the generated uid.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail returns a user by e-mail or an error when not found.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service handles registration, login and JWT validation.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// ErrInvalidCredentials is returned on a wrong e-mail/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// New creates an auth Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register creates a new account. The role is fixed at registration and
// never changes afterwards; business accounts carry a NIP.
func (s *Service) Register(ctx context.Context, email, rawPassword, role, fullName string, nip *string) (string, error) {
	if role != models.RoleResident && role != models.RoleBusiness {
		return "", fmt.Errorf("unknown role: %s", role)
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		FullName:     fullName,
		NIP:          nip,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token, role, userUID string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return "", "", "", err
	}
	return token, user.Role, user.UID, nil
}

// ValidateToken checks a JWT and returns the identity stored in it.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
