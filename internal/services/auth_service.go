package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/auth"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxPasswordBytes is the bcrypt input limit
const maxPasswordBytes = 72

// IDTokenVerifier is the part of the Firebase auth client used for login
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// AuthService registers users and exchanges credentials for identity tokens
type AuthService struct {
	users    repositories.UserRepository
	tokens   *auth.TokenManager
	firebase IDTokenVerifier
	hashCost int
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:    repositories.NewPostgresUserRepository(db),
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithFirebase enables AuthenticateFirebase
func (s *AuthService) WithFirebase(verifier IDTokenVerifier) *AuthService {
	s.firebase = verifier
	return s
}

// FirebaseEnabled reports whether a Firebase verifier is configured
func (s *AuthService) FirebaseEnabled() bool {
	return s.firebase != nil
}

// Register creates a user. Username is checked for uniqueness before email.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.PublicUser, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.Validation("All fields are required")
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.Validation("Password is too long")
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, apperrors.Conflict("Username already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, Password: string(hashed)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("Username or Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	public := user.ToPublic()
	return &public, nil
}

// Authenticate checks a username-or-email plus password and issues a token
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", apperrors.Validation("Username/Email and password required")
	}

	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.Auth("Invalid credentials")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Auth("Invalid credentials")
	}

	return s.tokens.Generate(user.ID)
}

// AuthenticateFirebase exchanges a Firebase ID token for a local token.
// The local account is matched by the token's email claim.
func (s *AuthService) AuthenticateFirebase(ctx context.Context, idToken string) (string, error) {
	if s.firebase == nil {
		return "", apperrors.NotFound("Firebase login is not enabled")
	}
	if strings.TrimSpace(idToken) == "" {
		return "", apperrors.Validation("ID token is required")
	}

	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", apperrors.Auth("Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", apperrors.Auth("Firebase token has no email")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperrors.NotFound("User not found")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	return s.tokens.Generate(user.ID)
}
