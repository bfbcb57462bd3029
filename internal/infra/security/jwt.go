package security

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
)

var (
	// ErrTokenInvalid indicates the token failed signature or structural validation.
	ErrTokenInvalid = errors.New("jwt: invalid token")
	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("jwt: token expired")
)

// Claims carries the identity encoded in an access token. The engine never
// trusts the role claim alone; handlers reload the full user record before
// any permission decision.
type Claims struct {
	UserID       string `json:"sub"`
	EnterpriseID string `json:"enterprise_id"`
	RoleCode     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and parses HS256 access tokens.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager constructs a manager from a shared secret.
func NewJWTManager(secret, issuer string, ttl time.Duration) (*JWTManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt: secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock allows injection of a custom clock (primarily for testing).
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	if now != nil {
		m.now = now
	}
	return m
}

// Issue signs an access token for the given identity.
func (m *JWTManager) Issue(userID, enterpriseID, roleCode string) (string, error) {
	issuedAt := m.now().UTC()
	claims := Claims{
		UserID:       userID,
		EnterpriseID: enterpriseID,
		RoleCode:     roleCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its claims.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
