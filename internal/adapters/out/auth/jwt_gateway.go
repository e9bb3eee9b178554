// Package auth verifies operator bearer tokens.
package auth

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorRole is the role claim an admin token must carry.
const OperatorRole = "operator"

var (
	ErrTokenMissing = errs.NewAuthorizationError("missing bearer token")
	ErrNotOperator  = errs.NewAuthorizationError("token does not carry the operator role")
)

type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	// Leeway tolerates clock skew between issuer and this service.
	Leeway time.Duration
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTGateway accepts HS256 tokens signed with the shared secret.
type JWTGateway struct {
	cfg    Config
	parser *jwt.Parser
}

func NewJWTGateway(cfg Config) *JWTGateway {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &JWTGateway{cfg: cfg, parser: jwt.NewParser(opts...)}
}

func (g *JWTGateway) Authorize(_ context.Context, bearerToken string) (ports.Principal, error) {
	if bearerToken == "" {
		return ports.Principal{}, ErrTokenMissing
	}

	var claims Claims
	_, err := g.parser.ParseWithClaims(bearerToken, &claims, func(*jwt.Token) (any, error) {
		return g.cfg.Secret, nil
	})
	if err != nil {
		return ports.Principal{}, errs.NewAuthorizationErrorWithCause("invalid token", err)
	}

	if claims.Role != OperatorRole {
		return ports.Principal{}, ErrNotOperator
	}

	subject := claims.Subject
	if subject == "" {
		return ports.Principal{}, errs.NewAuthorizationErrorWithCause("invalid token", errors.New("subject is empty"))
	}

	return ports.Principal{Subject: subject}, nil
}

// Issue signs an operator token. Used by the dev tooling and tests.
func (g *JWTGateway) Issue(subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Role: OperatorRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    g.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if g.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{g.cfg.Audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.cfg.Secret)
}

var _ ports.AdminGateway = (*JWTGateway)(nil)
