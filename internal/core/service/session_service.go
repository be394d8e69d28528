package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chatterly/chat-service/internal/core/domain"
)

// RevocationStore tracks revoked session tokens until their natural expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SessionService issues and validates HS256 session tokens. The signing
// secret is process-wide configuration, set once at startup.
type SessionService struct {
	secret  string
	ttl     time.Duration
	revoked RevocationStore
}

func NewSessionService(secret string, ttl time.Duration, revoked RevocationStore) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{secret: secret, ttl: ttl, revoked: revoked}
}

// Issue signs a new session token bound to the user.
func (s *SessionService) Issue(_ context.Context, user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"jti":      newSessionID(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Validate checks the token's signature, expiry, and revocation status and
// returns the bound identity.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	jti, _ := claims["jti"].(string)
	if jti != "" {
		revoked, err := s.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrUnauthenticated
		}
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Identity{UserID: userID, Username: username}, nil
}

// Revoke marks the token's session ID as invalid for the remainder of its
// lifetime. Already-invalid tokens are rejected.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return domain.ErrUnauthenticated
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return domain.ErrUnauthenticated
	}

	ttl := s.ttl
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(exp), 0))
	}
	if ttl <= 0 {
		return nil
	}

	return s.revoked.Revoke(ctx, jti, ttl)
}

func (s *SessionService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}

// newSessionID returns a random 128-bit hex session identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
