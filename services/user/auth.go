package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "facestudio/database/repository/user"
	"facestudio/models"
	"facestudio/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 7 * 24 * time.Hour

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: *u}, nil
}

func validateRegistration(req *models.RegistrationRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Mobile = strings.TrimSpace(req.Mobile)

	// Presence and the email format are checked when the request is bound.
	if !usernameRe.MatchString(req.Username) {
		return &ValidationError{Field: "username", Message: "3-150 letters, digits and @/./+/-/_ only"}
	}
	if err := VerifyPasswordComplexity(req.Password, req.Username); err != nil {
		return &ValidationError{Field: "password", Message: err.Error()}
	}
	return nil
}

// Register creates a customer account, signs it in and adds the address to the email collection.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegistrationRequest) (*models.AuthResponse, error) {
	logger := s.logger()
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	logger.Info("Register: user created", zap.Int64("id", u.ID), zap.String("username", u.Username))

	if s.Emails != nil {
		uid := u.ID
		_, err := s.Emails.CollectEmail(ctx, &models.CollectedEmail{
			Email:     u.Email,
			Source:    models.SourceRegistration,
			UserID:    &uid,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Mobile:    u.Mobile,
		})
		if err != nil {
			logger.Warn("Register: email collection failed", zap.Error(err))
		}
	}
	return s.issue(u)
}

// Login accepts a username or an email. Unknown users and wrong passwords look the same to the caller.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByLogin(ctx, identifier)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger().Info("Login: password mismatch", zap.Int64("id", u.ID))
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultUserService) SetRole(ctx context.Context, id int64, role string) (*models.User, error) {
	if role != models.RoleCustomer && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if err := s.Repo.SetRole(ctx, id, role); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set role: %w", err)
	}
	s.logger().Info("SetRole: role changed", zap.Int64("id", id), zap.String("role", role))
	return s.GetUserByID(ctx, id)
}
