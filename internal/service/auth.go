package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
	"skirentals-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, "", &domain.ValidationError{Field: "name", Message: "Name is required."}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", &domain.ValidationError{Field: "email", Message: "A valid email is required."}
	}
	if len(password) < 8 {
		return nil, "", &domain.ValidationError{Field: "password", Message: "Password must be at least 8 characters."}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", &domain.ConflictError{Entity: "user", Message: "An account with this email already exists."}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:             email,
		Name:              name,
		PasswordHash:      string(hash),
		Role:              domain.RolePatron,
		PhoneNumber:       phone,
		PreferredDuration: domain.RentalDurationDaily,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int32, name, phone string, preferredDuration domain.RentalDuration) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	user.PhoneNumber = phone
	if preferredDuration != "" {
		if !preferredDuration.IsValid() {
			return nil, &domain.ValidationError{Field: "preferred_duration", Message: "Unknown rental duration."}
		}
		user.PreferredDuration = preferredDuration
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
