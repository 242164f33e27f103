package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Compass/config"
	"github.com/lshigami/Compass/internal/auth"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	issuer      *auth.TokenIssuer
	adminEmails []string
}

func NewAuthService(userRepo repository.UserRepository, issuer *auth.TokenIssuer, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, issuer: issuer, adminEmails: cfg.Auth.AdminEmails}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("check email", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if slices.Contains(s.adminEmails, email) {
		user.Role = model.RoleAdmin
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
		}
		return nil, storageError("create user", err)
	}
	log.Info().Str("userID", user.ID.String()).Str("role", user.Role).Msg("User registered")
	return s.tokenFor(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrAuthenticationRequired)
		}
		return nil, storageError("load user", err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrAuthenticationRequired)
	}
	return s.tokenFor(user)
}

func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError("user", err)
	}
	return user, nil
}

func (s *authService) tokenFor(user *model.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	resp := &dto.AuthResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}
	if err := copier.Copy(&resp.User, user); err != nil {
		return nil, fmt.Errorf("map user: %w", err)
	}
	return resp, nil
}
