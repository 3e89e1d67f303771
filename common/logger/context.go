package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment so the webhook handler can
// tag a delivery once and have every downstream log record carry the tags.
type LogFields struct {
	DeliveryID *int64  // Relay-assigned snowflake ID for this inbound delivery
	EventType  *string // GitHub event type header (e.g. "issues", "push")
	Repository *string // "owner/name" of the repository the event came from
	Component  string  // Component name (e.g. "relay.compose", "relay.traq")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.DeliveryID != nil {
		result.DeliveryID = next.DeliveryID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.Repository != nil {
		result.Repository = next.Repository
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{DeliveryID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
