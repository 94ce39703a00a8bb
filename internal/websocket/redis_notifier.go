package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const publishTimeout = 3 * time.Second

// OverviewEnvelope is what RedisNotifier publishes. Origin identifies the
// publishing process so its relay can skip events it already delivered.
type OverviewEnvelope struct {
	Origin string `json:"origin,omitempty"`
	MarkSubmittedEvent
}

// RedisNotifier delivers overview events to the local Hub and then publishes
// them on a Redis channel so other server processes sharing the instance id
// can relay them to their own overviews.
type RedisNotifier struct {
	rdb     *redis.Client
	hub     *Hub
	channel string
	origin  string
	log     zerolog.Logger
}

// NewRedisNotifier creates a notifier that broadcasts on hub and publishes on
// channel, tagging each event with origin.
func NewRedisNotifier(rdb *redis.Client, hub *Hub, channel, origin string, log zerolog.Logger) *RedisNotifier {
	return &RedisNotifier{
		rdb:     rdb,
		hub:     hub,
		channel: channel,
		origin:  origin,
		log:     log.With().Str("component", "redis_notifier").Logger(),
	}
}

// MarkSubmitted updates local overviews first, then publishes. Publish errors
// are logged; the submission and the local update already happened.
func (n *RedisNotifier) MarkSubmitted(title string) {
	n.hub.MarkSubmitted(title)

	payload, err := json.Marshal(OverviewEnvelope{
		Origin:             n.origin,
		MarkSubmittedEvent: MarkSubmittedEvent{Event: EventMarkSubmitted, Title: title},
	})
	if err != nil {
		n.log.Error().Err(err).Msg("Encode overview event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := n.rdb.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.log.Error().Err(err).Str("title", title).Msg("Publish overview event failed")
	}
}

// DecodeOverviewEvent parses a payload published by RedisNotifier.
func DecodeOverviewEvent(payload string) (OverviewEnvelope, error) {
	var ev OverviewEnvelope
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return OverviewEnvelope{}, err
	}
	return ev, nil
}
