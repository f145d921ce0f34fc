package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/repository"
	"clinic-reservation-backend/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
	logger    *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, auditRepo *repository.AuditRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uint   `json:"id"`
	UserType   string `json:"user_type"`
	HospitalID uint   `json:"hospital_id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
}

// Login authenticates an admin user by login id and password
func (s *AuthService) Login(loginID, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByLoginID(loginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !utils.ComparePassword(*user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user, "user_login")
}

// LoginWithLine authenticates a patient by LINE id. Patients have no
// password; the LINE platform already authenticated them.
func (s *AuthService) LoginWithLine(lineID string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByLineID(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.UserType != models.UserTypePatient {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user, "user_login_line")
}

func (s *AuthService) issueTokens(user *models.User, auditAction string) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.UserType, user.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}
	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, auditAction, fmt.Sprintf("User ID %d logged in", user.ID))

	s.logger.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("user_type", user.UserType),
	)

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:         user.ID,
			UserType:   user.UserType,
			HospitalID: user.HospitalID,
			LastName:   user.LastName,
			FirstName:  user.FirstName,
		},
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if time.Now().After(token.ExpiresAt) {
		return "", ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.UserType, token.User.HospitalID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)
	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// GetUser returns the active user for an id
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
