package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edustore/internal/auth"
	"edustore/internal/model"
	"edustore/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles authentication operations. Registration always
// produces a customer profile; admin profiles come from the seed tool
// only, so no request can escalate its own role.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*model.Profile, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, profile *model.Profile, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	profileRepo repository.ProfileRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(profileRepo repository.ProfileRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		profileRepo: profileRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

// Register creates a new customer profile with hashed password.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (*model.Profile, error) {
	// Check if profile already exists
	existing, err := s.profileRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	// If error is not "record not found", return it (could be a database error)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check profile existence: %w", err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &model.Profile{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Role:         model.RoleCustomer,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return profile, nil
}

// Login authenticates a profile and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, profile *model.Profile, err error) {
	profile, err = s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, profile.ID, profile.Email, profile.Role, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, profile, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	// Verify token exists in Redis
	storedUserID, storedEmail, storedRole, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	// Verify token matches stored data
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	// The stored role wins: it reflects what was current at login time
	// and cannot be forged by re-signing an old token.
	accessToken, err = s.jwtService.GenerateAccessToken(storedUserID, storedEmail, storedRole)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
