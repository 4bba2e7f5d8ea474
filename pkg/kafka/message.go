package kafka

import "time"

// Message is the transport-agnostic event shape handed to the producer.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
