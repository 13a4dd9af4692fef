package service

// TopicSubscription is one subscriber's membership in a topic. Closing it
// leaves the topic and releases the event channel.
type TopicSubscription interface {
	// Events yields events published to the topic after the join. Late
	// joiners never receive past events.
	Events() <-chan *StatusEvent

	// Close leaves the topic. Safe to call more than once.
	Close()
}

// Broadcaster is the in-process fan-out of status events to live
// subscribers, keyed by tracking code. Delivery is best-effort with no
// durability; ordering within one topic follows publish call order.
type Broadcaster interface {
	// Join subscribes to a topic and returns the membership handle.
	Join(topic string) TopicSubscription

	// Publish delivers an event to the subscribers currently joined to
	// the topic. It never blocks on slow subscribers.
	Publish(topic string, event *StatusEvent)
}
