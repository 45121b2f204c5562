package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to registration, admin-created accounts and password changes.
const MinPasswordLength = 6

const tokenIssuer = "gym-app"

// AuthService registers accounts, issues session tokens and validates them.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	ParseToken(token string) (*domain.Session, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
	ownerEmail    string
	now           Clock
	logger        *zap.Logger
}

// AuthServiceConfig groups the dependencies of NewAuthService.
type AuthServiceConfig struct {
	Users         repository.UserRepository
	JWTSecret     string
	JWTExpiration time.Duration
	// OwnerEmail is granted admin rights on registration.
	OwnerEmail string
	Clock      Clock
	Logger     *zap.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg AuthServiceConfig) AuthService {
	if cfg.JWTSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if cfg.JWTExpiration <= 0 {
		cfg.JWTExpiration = 24 * time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &authService{
		userRepo:      cfg.Users,
		jwtSecret:     []byte(cfg.JWTSecret),
		jwtExpiration: cfg.JWTExpiration,
		ownerEmail:    normalizeEmail(cfg.OwnerEmail),
		now:           cfg.Clock,
		logger:        cfg.Logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", invalidf("password must be at least %d characters", MinPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

// createAccount validates input, hashes the password and stores the user.
func createAccount(ctx context.Context, users repository.UserRepository, name, email, password string, isAdmin bool) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidf("email and password are required")
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         domain.DefaultDisplayName(name, email),
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
	}
	if _, err := users.Create(ctx, user); err != nil {
		// Another request registered the same email after the check above.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Register handles new user registration. An empty name falls back to the email's local part.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	isOwner := s.ownerEmail != "" && normalizeEmail(email) == s.ownerEmail
	user, err := createAccount(ctx, s.userRepo, name, email, password, isOwner)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.Bool("admin", user.IsAdmin))
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, invalidf("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.logger.Error("token generation failed", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := &jwtClaims{
		UserID:  user.ID.Hex(),
		Email:   user.Email,
		Name:    domain.DefaultDisplayName(user.Name, user.Email),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken validates a bearer token and returns the session it describes.
func (s *authService) ParseToken(tokenString string) (*domain.Session, error) {
	claims := &jwtClaims{}
	// Time-based claims are checked below against the injected clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !claims.VerifyExpiresAt(s.now(), true) || !claims.VerifyIssuer(tokenIssuer, true) {
		return nil, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return &domain.Session{
		UserID:      userID,
		Email:       claims.Email,
		DisplayName: claims.Name,
		IsAdmin:     claims.IsAdmin,
	}, nil
}
