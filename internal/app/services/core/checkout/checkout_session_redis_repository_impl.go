package checkout

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// CheckoutSessionRedisRepository keeps the per-visit working state in Redis.
// The TTL bounds how long an abandoned checkout lingers; a committed visit no
// longer needs its session.
type CheckoutSessionRedisRepository struct {
	RedisRepo  contracts.RedisRepository
	SessionTTL time.Duration
}

func NewCheckoutSessionRedisRepository(redisRepo contracts.RedisRepository, sessionTTL time.Duration) contracts.CheckoutSessionRepository {
	return &CheckoutSessionRedisRepository{
		RedisRepo:  redisRepo,
		SessionTTL: sessionTTL,
	}
}

func (r *CheckoutSessionRedisRepository) Find(ctx context.Context, visitID string) (*models.CheckoutSession, error) {
	key := fmt.Sprintf(constvars.RedisKeyCheckoutSessionFormat, visitID)
	data, err := r.RedisRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if session.Overrides == nil {
		session.Overrides = make(map[string]models.CoverageOverride)
	}
	return &session, nil
}

func (r *CheckoutSessionRedisRepository) Save(ctx context.Context, session *models.CheckoutSession) error {
	key := fmt.Sprintf(constvars.RedisKeyCheckoutSessionFormat, session.VisitID)
	return r.RedisRepo.Set(ctx, key, session, r.SessionTTL)
}

func (r *CheckoutSessionRedisRepository) Delete(ctx context.Context, visitID string) error {
	key := fmt.Sprintf(constvars.RedisKeyCheckoutSessionFormat, visitID)
	return r.RedisRepo.Delete(ctx, key)
}
