package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/monasabatlabs/monasabat/internal/auth"
	"github.com/monasabatlabs/monasabat/internal/config"
	notificationdomain "github.com/monasabatlabs/monasabat/internal/notification/domain"
	notificationservice "github.com/monasabatlabs/monasabat/internal/notification/service"
	otpdomain "github.com/monasabatlabs/monasabat/internal/otp/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
)

type Service struct {
	redis      *redis.Client
	log        *zap.Logger
	ttl        time.Duration
	codeLength int
	accounts   supplierdomain.Service
	tokens     *auth.Manager
	dispatcher *notificationservice.Dispatcher
}

type ServiceParam struct {
	fx.In

	Redis      *redis.Client
	Log        *zap.Logger
	Config     config.Config
	Accounts   supplierdomain.Service
	Tokens     *auth.Manager
	Dispatcher *notificationservice.Dispatcher
}

func NewService(p ServiceParam) otpdomain.Service {
	ttl := p.Config.OTP.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	length := p.Config.OTP.CodeLength
	if length <= 0 {
		length = 6
	}
	return &Service{
		redis:      p.Redis,
		log:        p.Log.Named("otp.service"),
		ttl:        ttl,
		codeLength: length,
		accounts:   p.Accounts,
		tokens:     p.Tokens,
		dispatcher: p.Dispatcher,
	}
}

func key(phone string) string {
	return "otp:" + phone
}

// Request implements domain.Service. SET with expiry replaces any
// outstanding code; redis owns the TTL so there is no timer to leak.
func (s *Service) Request(ctx context.Context, phone string) error {
	code, err := s.generateCode()
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, key(phone), code, s.ttl).Err(); err != nil {
		return err
	}

	s.dispatcher.Dispatch(notificationdomain.Notification{
		Phone:       phone,
		TemplateKey: notificationdomain.TemplateOTPCode,
		Locale:      "ar",
		Args:        []any{code},
	})
	return nil
}

// Verify implements domain.Service. An expired key reads as missing, so
// expiry is decided at read time by a plain existence check.
func (s *Service) Verify(ctx context.Context, phone, code string) (string, error) {
	stored, err := s.redis.Get(ctx, key(phone)).Result()
	if err == redis.Nil {
		return "", otpdomain.ErrCodeInvalid
	}
	if err != nil {
		return "", err
	}
	if stored != code {
		return "", otpdomain.ErrCodeInvalid
	}

	// Consume the code before issuing the token; a second verify with
	// the same code must fail.
	if err := s.redis.Del(ctx, key(phone)).Err(); err != nil {
		s.log.Warn("failed to consume otp code", zap.Error(err))
	}

	account, err := s.accounts.RegisterFromPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(ctx, account)
}

func (s *Service) generateCode() (string, error) {
	maxExclusive := big.NewInt(1)
	for i := 0; i < s.codeLength; i++ {
		maxExclusive.Mul(maxExclusive, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, maxExclusive)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", s.codeLength, n), nil
}
