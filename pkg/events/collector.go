package events

import "slices"

// EventCollector holds the events an aggregate raised since it was loaded.
// Recording never writes into a backing array shared with an earlier copy,
// so value-copied aggregates keep independent event lists.
type EventCollector struct {
	events []DomainEvent
}

// Record appends event.
func (c *EventCollector) Record(event DomainEvent) {
	n := len(c.events)
	c.events = append(c.events[:n:n], event)
}

// Events returns the recorded events in order. The slice is a copy.
func (c EventCollector) Events() []DomainEvent {
	return slices.Clone(c.events)
}

// Len reports how many events are pending.
func (c EventCollector) Len() int {
	return len(c.events)
}

// Of returns the pending events of the given type.
func (c EventCollector) Of(eventType string) []DomainEvent {
	var out []DomainEvent
	for _, e := range c.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}
