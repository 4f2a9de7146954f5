package auth

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"

	"github.com/monasabatlabs/monasabat/internal/clock"
	"github.com/monasabatlabs/monasabat/internal/config"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
)

var (
	ErrInvalidToken  = errors.New("invalid_token")
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

type Claims struct {
	Phone string `json:"phone"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (snowflake.ID, error) {
	return snowflake.ParseString(c.Subject)
}

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clock.Clock
}

func NewManager(cfg config.Config, clk clock.Clock) (*Manager, error) {
	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.JWT.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Manager{
		secret: []byte(cfg.JWT.Secret),
		issuer: cfg.JWT.Issuer,
		ttl:    ttl,
		clock:  clk,
	}, nil
}

func (m *Manager) Issue(ctx context.Context, account *supplierdomain.Supplier) (string, error) {
	now := m.clock.Now(ctx)
	claims := Claims{
		Phone: account.Phone,
		Role:  string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) Parse(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

var Module = fx.Module("auth",
	fx.Provide(NewManager),
)
