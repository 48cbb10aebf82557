package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/padel-tournament/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	roleOrganizer      = "organizer"
	organizerSubject   = "organizer"
	jwtClaimRole       = "role"
	jwtClaimSubject    = "sub"
	jwtClaimTokenID    = "jti"
	jwtClaimExpiration = "exp"
	jwtClaimIssuedAt   = "iat"
)

// Organizer is the capability required by every mutating tournament operation.
// Only AuthService hands out valid values.
type Organizer struct {
	subject string
	tokenID string
}

func (o Organizer) Valid() bool { return o.subject != "" }

func (o Organizer) TokenID() string { return o.tokenID }

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService interface {
	Login(ctx context.Context, password string) (*LoginResult, error)
	Authorize(ctx context.Context, token string) (Organizer, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthService checks the organizer password against passwordHash (bcrypt) and signs tokens with jwtSecret.
func NewAuthService(passwordHash string, jwtSecret []byte, ttl time.Duration) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, password string) (*LoginResult, error) {
	if password == "" || !utils.CheckPasswordHash(password, s.passwordHash) {
		return nil, ErrAuthInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		jwtClaimSubject:    organizerSubject,
		jwtClaimRole:       roleOrganizer,
		jwtClaimTokenID:    uuid.NewString(),
		jwtClaimIssuedAt:   now.Unix(),
		jwtClaimExpiration: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) Authorize(ctx context.Context, tokenString string) (Organizer, error) {
	if tokenString == "" {
		return Organizer{}, ErrAuthInvalidToken
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Organizer{}, fmt.Errorf("token expired: %w", ErrAuthInvalidToken)
		}
		return Organizer{}, ErrAuthInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Organizer{}, ErrAuthInvalidToken
	}
	role, _ := claims[jwtClaimRole].(string)
	subject, _ := claims[jwtClaimSubject].(string)
	if role != roleOrganizer || subject == "" {
		return Organizer{}, ErrForbiddenOperation
	}
	tokenID, _ := claims[jwtClaimTokenID].(string)
	return Organizer{subject: subject, tokenID: tokenID}, nil
}
