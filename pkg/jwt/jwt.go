package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrMissingSecret        = errors.New("signing secret is required")
)

// TokenService issues and verifies HMAC-signed session tokens. Verification
// is stateless; revocation is handled separately by the blacklist.
type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &TokenService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
	}, nil
}

// GenerateAccessToken issues a short-lived access token bound to the user.
func (s *TokenService) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessExpiry)

	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:    userID,
		Email:     email,
		TokenType: domain.TokenTypeAccess,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// GenerateRefreshToken issues a longer-lived refresh token with minimal claims.
func (s *TokenService) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()

	claims := domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:    userID,
		TokenType: domain.TokenTypeRefresh,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateTokenPair issues matching access and refresh tokens for a user.
func (s *TokenService) GenerateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, expiresAt, err := s.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *TokenService) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, s.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ParseIgnoringExpiry verifies the signature and returns the claims without
// enforcing time-based claims. The refresh flow accepts an expired token as
// long as the signature checks out.
func (s *TokenService) ParseIgnoringExpiry(tokenString string) (*domain.Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, &domain.Claims{}, s.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Refresh verifies the token signature ignoring expiry and issues a fresh
// access token bound to the same subject. Stale iat/exp values are never
// carried over; the new token gets its own lifetime.
func (s *TokenService) Refresh(oldToken string) (string, time.Time, error) {
	claims, err := s.ParseIgnoringExpiry(oldToken)
	if err != nil {
		return "", time.Time{}, err
	}

	return s.GenerateAccessToken(claims.UserID, claims.Email)
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidSigningMethod
	}
	return s.secret, nil
}
