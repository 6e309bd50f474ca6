package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/usecase"
)

// RedisNotifier publishes lookup events to a Redis channel.
// A nil client turns it into a log-only notifier, mirroring how the rest of
// the service runs without Redis.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
	stamp   stamp
}

var _ usecase.Notifier = (*RedisNotifier)(nil)

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel, stamp: defaultStamp()}
}

// Notify publishes ev as JSON.
func (n *RedisNotifier) Notify(ctx context.Context, ev entity.LookupEvent) error {
	msg := n.stamp.message(ev)
	if n.rdb == nil {
		slog.Info("lookup event", "id", msg.ID, "symbol", msg.Symbol, "success", msg.Success)
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal lookup event: %w", err)
	}
	if err := n.rdb.Publish(ctx, n.channel, string(data)).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", n.channel, err)
	}
	return nil
}
