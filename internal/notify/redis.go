package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Channel names the pub/sub channel for a table within a session
func (r *Redis) Channel(table, sessionID string) string {
	return fmt.Sprintf("%s:changes:%s:%s", r.prefix, table, sessionID)
}

func (r *Redis) Publish(ctx context.Context, table, sessionID string) error {
	data, err := json.Marshal(Event{Table: table, SessionID: sessionID})
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.Channel(table, sessionID), string(data)).Err(); err != nil {
		log.Printf("[NOTIFY] publish %s/%s failed: %v", table, sessionID, err)
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, sessionID string, tables []string, fn func(Event)) (Subscription, error) {
	channels := make([]string, 0, len(tables))
	for _, t := range tables {
		channels = append(channels, r.Channel(t, sessionID))
	}

	ps := r.client.Subscribe(ctx, channels...)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe changes: %w", err)
	}

	go func() {
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[NOTIFY] dropping malformed payload on %s: %v", msg.Channel, err)
				continue
			}
			fn(ev)
		}
	}()

	return ps, nil
}
