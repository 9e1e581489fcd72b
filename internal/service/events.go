package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/bookbazaar/internal/events"
	"github.com/Skotchmaster/bookbazaar/pkg/logging"
)

// publish is best effort: the write it describes has already committed.
func publish(ctx context.Context, p events.Publisher, topic string, ev events.Event) {
	if p == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	if err := p.PublishEvent(ctx, topic, strconv.FormatUint(uint64(ev.EntityID), 10), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", ev.Type, "error", err)
	}
}
