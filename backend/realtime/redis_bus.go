package realtime

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"

	"project/backend/logger"
)

// Bus fans events out through redis pub/sub so that every instance's Hub
// sees events published by any instance. Emit publishes; the forwarder
// goroutine feeds received events into the local Hub.
type Bus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewBus(rdb *goredis.Client, channel string, log *logger.Logger) *Bus {
	if channel == "" {
		channel = "events"
	}
	return &Bus{
		log:     log.With("component", "Bus"),
		rdb:     rdb,
		channel: channel,
	}
}

func (b *Bus) Emit(ctx context.Context, event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		b.log.Error("marshal event", "error", err)
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		b.log.Error("publish event", "error", err, "event", event.Name)
	}
}

// StartForwarder subscribes to the bus channel and forwards events into
// hub until ctx is cancelled.
func (b *Bus) StartForwarder(ctx context.Context, hub *Hub) error {
	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures the subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					b.log.Warn("bad event payload", "error", err)
					continue
				}
				hub.Broadcast(event)
			}
		}
	}()

	return nil
}
