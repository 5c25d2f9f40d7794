package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe_share/internal/models"
	"recipe_share/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 24 * time.Hour

// msgUsernameInvalid is the canonical message for a missing or taken
// username; the two cases are deliberately indistinguishable.
const msgUsernameInvalid = "Username must be unique and present"

// AuthService owns account creation, credential checks and the
// session lifecycle behind the cookie token.
type AuthService struct {
	users      repository.Users
	sessions   repository.Sessions
	signingKey []byte
	sessionTTL time.Duration
}

func NewAuthService(users repository.Users, sessions repository.Sessions, cfg AuthConfig) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		signingKey: cfg.SigningKey,
		sessionTTL: ttl,
	}
}

type SignUpParams struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// sessionClaims binds the signed cookie value to a server-side session row.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    int    `json:"uid"`
}

// SignUp hashes the password, persists the user and opens a session.
// Persistence failures surface as validation errors per the API contract.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (*models.User, string, error) {
	if strings.TrimSpace(p.Username) == "" {
		return nil, "", newValidationError(msgUsernameInvalid)
	}
	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, "", newValidationError(err.Error())
	}

	u := models.User{
		Username:     p.Username,
		PasswordHash: hash,
		ImageURL:     p.ImageURL,
		Bio:          p.Bio,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, "", newValidationError(msgUsernameInvalid)
		}
		return nil, "", newValidationError(err.Error())
	}
	u.ID = id

	token, err := s.startSession(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// Login verifies credentials and opens a session. Unknown users and bad
// passwords both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// CurrentUser resolves a cookie token to its user. Any break in the
// chain (bad signature, destroyed or expired session, deleted user)
// yields ErrNotAuthorized.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, ErrNotAuthorized
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotAuthorized
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		// Lazy cleanup of the stale row.
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, ErrNotAuthorized
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotAuthorized
	}
	return u, nil
}

// EndSession destroys the session behind the token. A token that no
// longer maps to a live session yields ErrNotAuthorized.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return ErrNotAuthorized
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotAuthorized
	}
	return s.sessions.Delete(ctx, sess.ID)
}

// startSession persists a new session row and signs the token pointing
// at it.
func (s *AuthService) startSession(ctx context.Context, userID int) (string, error) {
	now := time.Now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sess.ID,
		UserID:    userID,
	})
	return token.SignedString(s.signingKey)
}

func (s *AuthService) parseToken(token string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
