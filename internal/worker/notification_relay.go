package worker

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/7vignesh/blind-coding/internal/websocket"
)

// NotificationRelay forwards overview events published on Redis into the
// local Hub, so overviews served by this process see submissions made
// through any other process of the same instance.
type NotificationRelay struct {
	rdb     *redis.Client
	hub     *ws.Hub
	channel string
	origin  string
	log     zerolog.Logger
}

// NewNotificationRelay creates a relay for channel. Events tagged with origin
// were already broadcast locally and are skipped. Call Start in its own goroutine.
func NewNotificationRelay(rdb *redis.Client, hub *ws.Hub, channel, origin string, log zerolog.Logger) *NotificationRelay {
	return &NotificationRelay{
		rdb:     rdb,
		hub:     hub,
		channel: channel,
		origin:  origin,
		log:     log.With().Str("component", "notification_relay").Logger(),
	}
}

// Start blocks until ctx is cancelled or the subscription closes.
func (w *NotificationRelay) Start(ctx context.Context) {
	sub := w.rdb.Subscribe(ctx, w.channel)
	defer sub.Close()

	w.log.Info().Str("channel", w.channel).Msg("NotificationRelay started")
	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("NotificationRelay stopped")
			return

		case msg, ok := <-messages:
			if !ok {
				w.log.Warn().Msg("Subscription closed")
				return
			}

			w.relay(msg.Payload)
		}
	}
}

// relay broadcasts a well-formed mark_submitted payload and drops anything else.
func (w *NotificationRelay) relay(payload string) bool {
	ev, err := ws.DecodeOverviewEvent(payload)
	if err != nil {
		w.log.Error().Err(err).Msg("Invalid overview payload")
		return false
	}
	if ev.Event != ws.EventMarkSubmitted || ev.Title == "" {
		return false
	}
	if ev.Origin == w.origin {
		return false
	}

	w.hub.MarkSubmitted(ev.Title)
	return true
}
