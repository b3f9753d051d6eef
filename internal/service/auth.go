package service

import (
	"context"
	"errors"

	"github.com/MRDEADPOOL12/To-do/internal/domain"
	"github.com/MRDEADPOOL12/To-do/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// dummyHash is compared against when the email is unknown so both login
// failure paths do comparable work and return the same error.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	return h
}()

// AuthService owns registration and login on top of the user repository
// and the token service.
type AuthService struct {
	users  *repository.UserRepository
	tokens *TokenService
}

func NewAuthService(users *repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register stores the user with a bcrypt password hash and returns a
// fresh session token. Duplicate emails surface the unique-index
// violation as domain.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the password against the stored hash. Unknown email and
// wrong password both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
