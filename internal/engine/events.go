package engine

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published by the travel engine. Subscribers (automated
// encounter resolution, UI panels) receive the hexcrawl aggregate as the
// event source.
const (
	EventPartyMoved        = "hexcrawl.party_moved"
	EventDayEnded          = "hexcrawl.day_ended"
	EventMeterThreshold    = "hexcrawl.meter_threshold"
	EventMeterDepleted     = "hexcrawl.meter_depleted"
	EventExhaustionChanged = "hexcrawl.exhaustion_changed"
)

// publish emits a game event on the configured bus. Publishing is best
// effort: a nil bus is a no-op and publish failures are logged, never
// surfaced, because engine mutations must not fail.
func (e *Engine) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if e.bus == nil {
		return
	}

	event := events.NewGameEvent(eventType, e.state, nil)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := e.bus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish engine event",
			"event_type", eventType,
			"hexcrawl_id", e.state.ID,
			"error", err,
		)
	}
}
