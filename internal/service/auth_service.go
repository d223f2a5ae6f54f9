package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/config"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
	"github.com/aaronipollock/memory-palace-sub001/pkg/blacklist"
	"github.com/aaronipollock/memory-palace-sub001/pkg/hash"
	"github.com/aaronipollock/memory-palace-sub001/pkg/jwt"
)

// DemoResetter restores a demo account's sample data. Reset must be
// idempotent; failures are logged and never propagate to the caller.
type DemoResetter interface {
	Reset(ctx context.Context, userID string) error
}

type AuthService struct {
	userRepo       repository.UserRepository
	tokenService   *jwt.TokenService
	tokenBlacklist blacklist.Blacklist
	demoResetter   DemoResetter
	cfg            *config.Config
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	IsDemo   bool   `json:"is_demo,omitempty"`
}

// AuthResponse carries everything the handler needs to establish a session:
// the token pair, the CSRF companion token and the user profile.
type AuthResponse struct {
	Tokens    *domain.TokenPair `json:"tokens"`
	User      *UserDTO          `json:"user"`
	CSRFToken string            `json:"csrf_token"`
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenService *jwt.TokenService,
	tokenBlacklist blacklist.Blacklist,
	demoResetter DemoResetter,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		tokenService:   tokenService,
		tokenBlacklist: tokenBlacklist,
		demoResetter:   demoResetter,
		cfg:            cfg,
	}
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.AlreadyExists("email")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	if req.Username != "" {
		if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperr.AlreadyExists("username")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		IsDemo:       req.Email == s.cfg.Demo.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	return s.establishSession(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Internal(err)
	}

	valid, err := hash.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !valid {
		return nil, apperr.InvalidCredentials()
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Best effort; a failed timestamp update must not block login.
		log.Printf("[AUTH] failed to update last login for %s: %v", user.ID, err)
	}

	return s.establishSession(user)
}

// Refresh exchanges a validly signed refresh token for a new access token.
// Expiry is deliberately not enforced; the token class must be refresh and
// the token must not be revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenService.ParseIgnoringExpiry(refreshToken)
	if err != nil {
		return "", time.Time{}, apperr.InvalidToken()
	}

	if claims.TokenType != domain.TokenTypeRefresh {
		return "", time.Time{}, apperr.InvalidToken()
	}

	revoked, err := s.tokenBlacklist.Contains(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, apperr.Internal(err)
	}
	if revoked {
		return "", time.Time{}, apperr.TokenRevoked()
	}

	accessToken, expiresAt, err := s.tokenService.Refresh(refreshToken)
	if err != nil {
		return "", time.Time{}, apperr.InvalidToken()
	}

	return accessToken, expiresAt, nil
}

// Logout blacklists the presented access token for its remaining lifetime.
// For demo accounts it additionally resets the sample data; a failed reset
// never fails the logout.
func (s *AuthService) Logout(ctx context.Context, accessToken string, claims *domain.Claims) error {
	if claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.tokenBlacklist.Add(ctx, accessToken, ttl); err != nil {
			return apperr.Internal(err)
		}
	}

	if s.demoResetter != nil {
		user, err := s.userRepo.GetByID(ctx, claims.UserID)
		if err == nil && user.IsDemo {
			if err := s.demoResetter.Reset(ctx, user.ID); err != nil {
				log.Printf("[AUTH] demo data reset failed for %s: %v", user.ID, err)
			}
		}
	}

	return nil
}

func (s *AuthService) establishSession(user *domain.User) (*AuthResponse, error) {
	tokens, err := s.tokenService.GenerateTokenPair(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	csrfToken, err := newCSRFToken()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &AuthResponse{
		Tokens: tokens,
		User: &UserDTO{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			IsDemo:   user.IsDemo,
		},
		CSRFToken: csrfToken,
	}, nil
}

// newCSRFToken returns 32 random bytes hex encoded, issued once per
// session-establishing response.
func newCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
