package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrPublish = errors.New("notifier: failed to publish event")

// Publisher отправка событий бронирований
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher публикует события в канал Redis pub/sub
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisPublisher создает publisher поверх клиента Redis
func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish сериализует событие в JSON и публикует его в канал
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: channel=%s, type=%s: %v", ErrPublish, p.channel, event.Type, err)
	}
	return nil
}

// Noop publisher для окружений без Redis
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
