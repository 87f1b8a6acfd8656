package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
)

// Session is the result of a successful login
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

type AuthService struct {
	accounts  AccountStore
	revoker   TokenRevoker
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates the account and session service. revoker may be nil,
// in which case logout cannot invalidate tokens before they expire.
func NewAuthService(accounts AccountStore, revoker TokenRevoker, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		revoker:   revoker,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return nil, apperror.NewValidation("username", fmt.Sprintf("must be %d to %d characters", minUsernameLength, maxUsernameLength))
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, apperror.NewValidation("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.NewConflict("username is already taken", err)
		}
		return nil, apperror.NewInternal("failed to create account", err)
	}
	log.Printf("[AuthService] registered account %d (%s)", account.ID, account.Username)
	return account, nil
}

// Login checks the credentials and issues a signed token
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.generateToken(account)
	if err != nil {
		return nil, apperror.NewInternal("failed to sign token", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

func (s *AuthService) generateToken(account *models.Account) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(account.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AccountID: account.ID,
		Username:  account.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature and expiry and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	if claims.AccountID == 0 || claims.Username == "" {
		return nil, apperror.NewUnauthorized("invalid token claims")
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the identity it was issued for
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (types.Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return types.Guest, err
	}
	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return types.Guest, apperror.NewInternal("failed to check token revocation", err)
		}
		if revoked {
			return types.Guest, apperror.NewUnauthorized("token has been revoked")
		}
	}
	return claims.Identity(), nil
}

// Logout revokes the token until it would have expired
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}
	if s.revoker == nil {
		log.Printf("[AuthService] no revocation store configured, token %s stays valid until expiry", claims.ID)
		return nil
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Time.Sub(s.now()); remaining > 0 {
			ttl = remaining
		}
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperror.NewInternal("failed to revoke token", err)
	}
	return nil
}

// Me returns the account behind the identity
func (s *AuthService) Me(ctx context.Context, identity types.Identity) (*models.Account, error) {
	if identity.IsGuest() {
		return nil, apperror.NewUnauthorized("not signed in")
	}
	account, err := s.accounts.FindByID(ctx, identity.AccountID)
	if err != nil {
		return nil, storeError(err, "account not found")
	}
	return account, nil
}
