package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"writerdesk-backend/internal/domains/user"
	"writerdesk-backend/pkg/jwt"
)

type userService struct {
	repo   user.Repository
	tokens *jwt.Manager
	expiry time.Duration
}

func NewUserService(repo user.Repository, tokens *jwt.Manager, expiry time.Duration) user.Service {
	return &userService{repo: repo, tokens: tokens, expiry: expiry}
}

// Register creates an account and returns a signed token
func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &user.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(created)
}

// Login verifies credentials and returns a signed token
func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	found, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !found.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.issueToken(found)
}

// GetProfile returns the public profile for an authenticated user
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := found.ToDTO()
	return &dto, nil
}

func (s *userService) issueToken(u *user.User) (*user.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.expiry),
		User:      u.ToDTO(),
	}, nil
}
