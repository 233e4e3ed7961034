package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/DeveloperWK/product-inventory-api/internal/utils"
)

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords so login failures do not reveal which was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type userService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a user with a bcrypt-hashed password.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Warn("User registration failed", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// AuthenticateUser verifies credentials and returns a signed bearer token.
func (s *userService) AuthenticateUser(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login rejected", slog.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAuthToken(user.UserID, string(user.Role), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to issue token", err)
	}

	logger.Info("User authenticated", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtExpiry.Seconds()),
		Role:      string(user.Role),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
