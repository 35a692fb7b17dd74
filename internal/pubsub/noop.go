package pubsub

import "github.com/charmbracelet/log"

// noopClient is used when no GCP project is configured. Messages are encoded
// so payload errors still surface, then dropped.
type noopClient struct{}

func NewNoop() PubSubClient {
	return noopClient{}
}

func (noopClient) SendMessage(topic EventType, data any) error {
	b, err := Encode(data)
	if err != nil {
		return err
	}
	log.Debug("Pub/Sub disabled, dropping message", "topic", topic, "bytes", len(b))
	return nil
}

func (noopClient) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}
