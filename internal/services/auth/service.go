package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Claims are the JWT claims issued at login
type Claims struct {
	jwt.RegisteredClaims
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// Session is the result of a successful login or registration
type Session struct {
	Token     string
	User      model.User
	Player    *model.Player
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	Issuer   string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Secret:   []byte("cornerkicks-local-development-secret"),
		TokenTTL: 7 * 24 * time.Hour,
		Issuer:   "cornerkicks",
	}
}

// Service handles accounts and bearer tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *zap.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *zap.Logger) *Service {
	defaults := DefaultConfig()
	if len(cfg.Secret) == 0 {
		cfg.Secret = defaults.Secret
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaults.Issuer
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// CreateAccount stores a new account with a hashed password
func (s *Service) CreateAccount(ctx context.Context, username, email, password string, role model.Role) (*model.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		User: model.User{
			Email:    email,
			Username: username,
			Role:     role,
		},
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("account created", zap.Int64("user_id", account.User.ID), zap.String("role", string(role)))
	return account, nil
}

// Register creates a member account and logs it in
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	account, err := s.CreateAccount(ctx, username, email, password, model.RoleMember)
	if err != nil {
		return nil, err
	}
	return s.createSession(ctx, account.User)
}

// Login authenticates an account and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, account.User)
}

// ValidateToken verifies a bearer token and returns the current account.
// The role comes from storage so a role change applies immediately.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidSession
	}
	account, err := s.storage.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return &account.User, nil
}

// Me returns the user and linked player behind a token
func (s *Service) Me(ctx context.Context, user model.User) (*Session, error) {
	player, err := s.linkedPlayer(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Player: player}, nil
}

func (s *Service) linkedPlayer(ctx context.Context, userID int64) (*model.Player, error) {
	player, err := s.storage.GetPlayerByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}

// createSession signs a token for user
func (s *Service) createSession(ctx context.Context, user model.User) (*Session, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: user.Username,
		Role:     user.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	player, err := s.linkedPlayer(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		User:      user,
		Player:    player,
		ExpiresAt: expiresAt,
	}, nil
}
