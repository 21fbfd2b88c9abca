package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	calls []published
	err   error
}

func (f *fakeClient) Publish(topic string, qos byte, _ bool, payload []byte) error {
	f.calls = append(f.calls, published{topic: topic, qos: qos, payload: payload})
	return f.err
}

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeClient{}
	p := newMQTTPublisher(client, "flashdeals/events", 1)

	p.Publish(context.Background(), New(OfferCreated, map[string]string{"offer_id": "o-1"}))

	require.Len(t, client.calls, 1)
	assert.Equal(t, "flashdeals/events/offer.created", client.calls[0].topic)
	assert.Equal(t, byte(1), client.calls[0].qos)

	var decoded struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(client.calls[0].payload, &decoded))
	assert.Equal(t, OfferCreated, decoded.Type)
	assert.Equal(t, "o-1", decoded.Data["offer_id"])
}

func TestMQTTPublisher_SwallowsFailures(t *testing.T) {
	client := &fakeClient{err: errors.New("broker down")}
	p := newMQTTPublisher(client, "", 7)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), New(TicketCreated, nil))
	})
	require.Len(t, client.calls, 1)
	assert.Equal(t, TicketCreated, client.calls[0].topic)
	assert.Equal(t, byte(1), client.calls[0].qos, "out of range qos falls back to 1")
}

func TestMQTTPublisher_SkipsCancelledContext(t *testing.T) {
	client := &fakeClient{}
	p := newMQTTPublisher(client, "x", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Publish(ctx, New(AccountRegistered, nil))

	assert.Empty(t, client.calls)
}
