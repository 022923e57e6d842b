package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/config"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/infrastructure/metrics"
	"github.com/greenfund/core/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	Role entities.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles member registration and member/admin login
type AuthService struct {
	userRepo  ports.UserRepository
	adminRepo ports.AdminRepository
	jwtConfig config.JWTConfig
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, adminRepo ports.AdminRepository, jwtConfig config.JWTConfig, m *metrics.Metrics, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		jwtConfig: jwtConfig,
		metrics:   m,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, entities.ErrCredentialsRequired
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Phone:     req.Phone,
		Password:  hashedPassword,
		CreatedAt: s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.UserRegistered()
	s.logger.Infow("User registered successfully", "user_id", user.ID, "email", user.Email)

	return &ports.RegisterResponse{ID: user.ID, Email: user.Email}, nil
}

// Login authenticates a user and returns a signed token
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		s.metrics.LoginAttempt(string(entities.UserRoleUser), false)
		s.logger.Warnw("Login attempt with unknown email", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	if !VerifyPassword(user.Password, req.Password) {
		s.metrics.LoginAttempt(string(entities.UserRoleUser), false)
		s.logger.Warnw("Login attempt with invalid password", "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	token, err := s.generateToken(strconv.FormatInt(user.ID, 10), entities.UserRoleUser)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginAttempt(string(entities.UserRoleUser), true)
	s.logger.Infow("User logged in successfully", "user_id", user.ID)

	return &ports.LoginResponse{Token: token, Name: user.DisplayName()}, nil
}

// AdminLogin checks all three admin factors and returns an admin token
func (s *AuthService) AdminLogin(ctx context.Context, req ports.AdminLoginRequest) (*ports.LoginResponse, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load admins: %w", err)
	}

	for _, admin := range admins {
		if !equalConstantTime(admin.Username, req.Username) || !equalConstantTime(admin.Code, req.Code) {
			continue
		}
		if !VerifyPassword(admin.Password, req.Password) {
			continue
		}

		token, err := s.generateToken(admin.Username, entities.UserRoleAdmin)
		if err != nil {
			return nil, err
		}

		s.metrics.LoginAttempt(string(entities.UserRoleAdmin), true)
		s.logger.LogSecurityEvent("admin_login", admin.Username, "", nil)
		return &ports.LoginResponse{Token: token}, nil
	}

	s.metrics.LoginAttempt(string(entities.UserRoleAdmin), false)
	s.logger.LogSecurityEvent("admin_login_failed", req.Username, "", nil)
	return nil, entities.ErrInvalidCredentials
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.IsValid() {
		return nil, entities.ErrInvalidToken
	}

	return &ports.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}

func (s *AuthService) generateToken(subject string, role entities.UserRole) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword checks password against a stored bcrypt hash. Stored values
// that are not bcrypt hashes are legacy plaintext and compare directly.
func VerifyPassword(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored != "" && equalConstantTime(stored, password)
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func equalConstantTime(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
