package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
)

var (
	ErrTokenExpired     = errors.New("token is expired")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenSignature   = errors.New("token signature is invalid")
	ErrTokenUnsupported = errors.New("token signing method is unsupported")
)

type tokenClaims struct {
	UserID int64         `json:"uid"`
	Email  string        `json:"email"`
	Roles  []models.Role `json:"roles"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies stateless HS256 session tokens.
// There is no server-side revocation list: a token stays valid
// until its expiration timestamp.
type TokenCodec struct {
	issuer     string
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenCodec(issuer string, signingKey []byte, tokenTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		issuer:     issuer,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
	}
}

// Issue signs a token asserting the given identity,
// expiring at issuedAt + the configured lifetime.
func (c *TokenCodec) Issue(identity Identity) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(c.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: identity.UserID,
		Email:  identity.Email,
		Roles:  identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID.String(),
			Issuer:    c.issuer,
			Subject:   identity.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiration of a token and returns the
// identity it asserts. Failures are reported as one of ErrTokenExpired,
// ErrTokenMalformed, ErrTokenSignature or ErrTokenUnsupported.
func (c *TokenCodec) Parse(token string) (Identity, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: %v", ErrTokenUnsupported, token.Header["alg"])
			}
			return c.signingKey, nil
		},
		jwt.WithIssuer(c.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenUnsupported):
			return Identity{}, ErrTokenUnsupported
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrTokenSignature
		default:
			return Identity{}, ErrTokenMalformed
		}
	}

	claims, ok := t.Claims.(*tokenClaims)
	if !ok {
		return Identity{}, ErrTokenMalformed
	}
	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Roles:  claims.Roles,
	}, nil
}
