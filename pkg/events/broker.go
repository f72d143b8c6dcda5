package events

import (
	"time"

	"github.com/borud/broker"
)

const publishTimeout = 1 * time.Second

// NewBroker creates a broker sized for a single run's lifecycle events.
func NewBroker() *broker.Broker {
	return broker.New(broker.Config{
		DownStreamChanLen:  10,
		PublishChanLen:     10,
		SubscribeChanLen:   10,
		UnsubscribeChanLen: 10,
		DeliveryTimeout:    100 * time.Millisecond,
	})
}

// Publish sends payload to the /process topic. A nil broker drops the event.
func Publish(b *broker.Broker, payload any) error {
	if b == nil {
		return nil
	}
	return b.Publish(TopicProcess, payload, publishTimeout)
}
