package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/barkeep/shaker/internal/domain"
)

// EventChannel is the pub/sub channel carrying catalog mutation events.
const EventChannel = "shaker:events"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// Publish broadcasts a mutation event. Failures are swallowed; signal
// delivery must never fail the mutation that triggered it.
func (s *SignalService) Publish(ctx context.Context, event domain.Event) {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.rdb.Publish(ctx, EventChannel, jsonstr)
}
