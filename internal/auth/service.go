package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/catalog"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service authenticates the kiosk administrator. There is a single admin
// credential, stored as a bcrypt hash in the catalog store and bootstrapped
// from configuration on first run.
type Service struct {
	secret []byte
	store  *catalog.Store
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewService(secret string, store *catalog.Store) *Service {
	return &Service{
		secret: []byte(secret),
		store:  store,
	}
}

// EnsureCredential writes the bootstrap admin credential if none is stored.
// An existing credential is never overwritten.
func (s *Service) EnsureCredential(ctx context.Context, password string) error {
	var cred adminCredential
	err := s.store.GetJSON(ctx, catalog.AdminCredentialKey, &cred)
	if err == nil && cred.PasswordHash != "" {
		return nil
	}
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.SetJSON(ctx, catalog.AdminCredentialKey, adminCredential{PasswordHash: string(hash)})
}

// Login checks the password against the stored hash and issues a token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	var cred adminCredential
	if err := s.store.GetJSON(ctx, catalog.AdminCredentialKey, &cred); err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *Service) generateToken() (TokenResponse, error) {
	now := time.Now()
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}

// ValidateToken parses a bearer token and confirms the admin role.
func (s *Service) ValidateToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Role != "admin" {
		return errors.New("auth: token invalid")
	}
	return nil
}
