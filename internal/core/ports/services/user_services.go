package services

import (
	"context"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
)

// UserSvcFacade defines registration, authentication and lookup for API users
type UserSvcFacade interface {
	// RegisterUser creates a user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns a signed token.
	AuthenticateUser(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// GetUserByID retrieves a user by its ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
