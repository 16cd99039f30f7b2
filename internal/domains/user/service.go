package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business-logic contract for identity
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}
