package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	presenceTTL     = 24 * time.Hour
	presenceTimeout = 2 * time.Second
)

// PresenceService keeps online status and last seen time of logins in redis.
// It is told about changes by the realtime hub; redis errors are only logged.
type PresenceService struct {
	redis *redis.Client
}

func NewPresenceService(redis *redis.Client) *PresenceService {
	return &PresenceService{
		redis: redis,
	}
}

type PresenceStatus struct {
	IsOnline bool       `json:"is_online"`
	LastSeen *time.Time `json:"last_seen"`
}

func (ps *PresenceService) SetOnline(login string) {
	ps.setStatus(login, true)
}

func (ps *PresenceService) SetOffline(login string) {
	ps.setStatus(login, false)
}

func (ps *PresenceService) setStatus(login string, online bool) {
	ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
	defer cancel()

	_, err := ps.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, statusKey(login), fmt.Sprintf("%t", online), presenceTTL)
		pipe.Set(ctx, lastSeenKey(login), time.Now().UTC().Format(time.RFC3339), presenceTTL)
		return nil
	})
	if err != nil {
		log.Printf("Error while updating user %v online status on cache: %v", login, err)
	}
}

func (ps *PresenceService) IsOnline(login string) bool {
	status, err := ps.GetStatus(login)
	if err != nil {
		return false
	}
	return status.IsOnline
}

func (ps *PresenceService) GetStatus(login string) (*PresenceStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
	defer cancel()

	values, err := ps.redis.MGet(ctx, statusKey(login), lastSeenKey(login)).Result()
	if err != nil {
		return nil, err
	}
	status := &PresenceStatus{}
	if s, ok := values[0].(string); ok {
		status.IsOnline = s == "true"
	}
	if s, ok := values[1].(string); ok {
		if lastSeen, err := time.Parse(time.RFC3339, s); err == nil {
			status.LastSeen = &lastSeen
		}
	}
	return status, nil
}

func statusKey(login string) string {
	return fmt.Sprintf("user_online_status_%v", login)
}

func lastSeenKey(login string) string {
	return fmt.Sprintf("user_last_seen_%v", login)
}
