package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storeratings/storeratings/internal/domain"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed payload, expiry, or an unknown role claim.
// Callers surface it as an authentication error, never a crash.
var ErrInvalidToken = errors.New("auth: invalid token")

// Identity is the verified caller attached to a request context.
type Identity struct {
	UserID string
	Role   domain.Role
}

// Claims is the JWT payload for issued tokens: subject carries the user ID,
// Role the account role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 identity tokens. The signing secret and
// token lifetime are fixed at startup.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer from the process-wide signing secret and TTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the user ID, role, and an absolute expiry.
func (i *Issuer) Issue(userID string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning the identity it asserts.
func (i *Issuer) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Role: role}, nil
}
