package domain

import "time"

// Delivery is one message handed to a consumer
type Delivery struct {
	// MessageID is the publisher assigned id, stable across redeliveries.
	MessageID string
	Exchange  Exchange
	Data      []byte
	// Attempt starts at 1 and grows on every redelivery.
	Attempt     uint64
	PublishedAt time.Time
}

// Redelivered reports whether the broker delivered this message before
func (d Delivery) Redelivered() bool {
	return d.Attempt > 1
}

// Disposition tells the broker adapter how to settle a delivery
type Disposition struct {
	Ack     bool
	Requeue bool
	Reason  error
}

// Ack settles a delivery as processed
func Ack() Disposition {
	return Disposition{Ack: true}
}

// Nack rejects a delivery; requeue asks for a redelivery, otherwise it is dead-lettered
func Nack(requeue bool, reason error) Disposition {
	return Disposition{Requeue: requeue, Reason: reason}
}

func (d Disposition) String() string {
	switch {
	case d.Ack:
		return "ack"
	case d.Requeue:
		return "nack_requeue"
	default:
		return "nack_drop"
	}
}
