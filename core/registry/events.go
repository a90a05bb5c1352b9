package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/asaidimu/go-gridfilter/core/filter"
)

// FilterEventType identifies the kind of registry event.
type FilterEventType string

// Emitted event types.
const (
	EventCriteriaChanged         FilterEventType = "criteria.changed"
	EventCriteriaParseFailed     FilterEventType = "criteria.parse.failed"
	EventFilterReset             FilterEventType = "filter.reset"
	EventFilterOpened            FilterEventType = "filter.opened"
	EventFilterClosed            FilterEventType = "filter.closed"
	EventAvailabilityInvalidated FilterEventType = "availability.invalidated"
)

// FilterEvent describes a state change inside the registry. It is the
// payload carried by the typed event bus.
type FilterEvent struct {
	Type      FilterEventType  `json:"type"`
	FilterID  string           `json:"filterId"`
	Criteria  *filter.Criteria `json:"criteria,omitempty"`
	Error     *string          `json:"error,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

// EventCallback is invoked for each event the subscription matches.
type EventCallback func(ctx context.Context, event FilterEvent) error

// SubscriptionInfo describes a registered subscription.
type SubscriptionInfo struct {
	Id          *string         `json:"id,omitempty"`
	Event       FilterEventType `json:"event"`
	Label       *string         `json:"label,omitempty"`
	Description *string         `json:"description,omitempty"`
	Unsubscribe func()
}

// RegisterSubscriptionOptions configures a subscription.
type RegisterSubscriptionOptions struct {
	Event       FilterEventType
	Callback    EventCallback
	Label       *string
	Description *string
}

func createEvent(eventType FilterEventType, filterID string, criteria *filter.Criteria, err error) FilterEvent {
	event := FilterEvent{
		Type:      eventType,
		FilterID:  filterID,
		Criteria:  criteria,
		Timestamp: time.Now().UnixMilli(),
	}
	if err != nil {
		msg := err.Error()
		event.Error = &msg
	}
	return event
}

// RegisterSubscription registers a callback for a registry event type.
// It returns a unique id that can be used to unregister later.
func (r *Registry[T]) RegisterSubscription(options RegisterSubscriptionOptions) string {
	unsubscribe := r.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.New().String()

	r.subscriptions[id] = &SubscriptionInfo{
		Id:          &id,
		Event:       options.Event,
		Unsubscribe: unsubscribe,
		Label:       options.Label,
		Description: options.Description,
	}
	return id
}

// UnregisterSubscription removes a subscription by its id.
func (r *Registry[T]) UnregisterSubscription(id string) {
	if info, ok := r.subscriptions[id]; ok {
		info.Unsubscribe()
		delete(r.subscriptions, id)
	}
}

// Subscriptions lists the currently active subscriptions.
func (r *Registry[T]) Subscriptions() []SubscriptionInfo {
	subs := make([]SubscriptionInfo, 0, len(r.subscriptions))
	for _, sub := range r.subscriptions {
		subs = append(subs, *sub)
	}
	return subs
}

// Shutdown detaches every subscription and stops event emission. The
// registry remains usable for evaluation and mutation afterwards; only
// the eventing surface is torn down. Shutdown is idempotent.
func (r *Registry[T]) Shutdown() {
	for id, info := range r.subscriptions {
		info.Unsubscribe()
		delete(r.subscriptions, id)
	}
	r.bus = nil
}

func (r *Registry[T]) emit(event FilterEvent) {
	if r.bus != nil {
		r.bus.Emit(string(event.Type), event)
	}
}
