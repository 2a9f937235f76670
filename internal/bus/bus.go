package bus

import "github.com/wagoodman/go-partybus"

var publisher partybus.Publisher

// SetPublisher sets the singleton event bus publisher. Until set, published events are dropped.
func SetPublisher(p partybus.Publisher) {
	publisher = p
}

// Publish sends an event onto the event bus, if a publisher has been set.
func Publish(event partybus.Event) {
	if publisher != nil {
		publisher.Publish(event)
	}
}
