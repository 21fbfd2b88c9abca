package mqtt

import (
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubToken struct {
	mqtt.Token
	done    chan struct{}
	release chan struct{}
	err     error
}

func completedToken(err error) *stubToken {
	done := make(chan struct{})
	close(done)
	return &stubToken{done: done, err: err}
}

func pendingToken() *stubToken {
	return &stubToken{done: make(chan struct{}), release: make(chan struct{})}
}

func (t *stubToken) Done() <-chan struct{} { return t.done }
func (t *stubToken) Error() error          { return t.err }

// WaitTimeout blocks until the test releases the token, standing in for a slow broker
func (t *stubToken) WaitTimeout(time.Duration) bool {
	if t.release == nil {
		return true
	}
	<-t.release
	return false
}

type stubPaho struct {
	mqtt.Client
	mu     sync.Mutex
	token  mqtt.Token
	topics []string
}

func (s *stubPaho) Publish(topic string, _ byte, _ bool, _ interface{}) mqtt.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	return s.token
}

func newStubClient(token mqtt.Token, log *zap.Logger) (*Client, *stubPaho) {
	paho := &stubPaho{token: token}
	return &Client{client: paho, config: &Config{PublishTimeout: time.Second}, log: log}, paho
}

func TestPublish_ReturnsBeforeBrokerAck(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	token := pendingToken()
	client, paho := newStubClient(token, zap.New(core))

	returned := make(chan error, 1)
	go func() { returned <- client.Publish("flashdeals/events/offer.created", 1, false, []byte("{}")) }()

	select {
	case err := <-returned:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish waited on the broker ack")
	}
	assert.Equal(t, []string{"flashdeals/events/offer.created"}, paho.topics)

	close(token.release)
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("MQTT publish not acknowledged").Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPublish_ImmediateFailure(t *testing.T) {
	client, _ := newStubClient(completedToken(errors.New("not connected")), zap.NewNop())

	err := client.Publish("t", 0, false, []byte("{}"))
	assert.EqualError(t, err, "not connected")

	client, _ = newStubClient(completedToken(nil), zap.NewNop())
	assert.NoError(t, client.Publish("t", 0, false, []byte("{}")))
}
