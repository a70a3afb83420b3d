package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-records/internal/config"
)

type fakeToken struct {
	err      error
	finished bool
}

func (t *fakeToken) Wait() bool                     { return t.finished }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.finished }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient implements the parts of mqtt.Client the publisher uses.
type fakeClient struct {
	mqtt.Client
	token        *fakeToken
	messages     []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeClient{token: &fakeToken{finished: true}}
	pub := NewMQTTPublisherWithClient(client, "fleet/", 1)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Publish(context.Background(), Event{Name: MaintenanceCreated, ID: 3, VehicleID: 7, At: at})
	require.NoError(t, err)

	require.Len(t, client.messages, 1)
	assert.Equal(t, "fleet/maintenance/created", client.messages[0].topic)
	assert.Equal(t, byte(1), client.messages[0].qos)

	var got Event
	require.NoError(t, json.Unmarshal(client.messages[0].payload, &got))
	assert.Equal(t, 3, got.ID)
	assert.Equal(t, 7, got.VehicleID)
	assert.True(t, got.At.Equal(at))

	pub.Close()
	assert.True(t, client.disconnected)
}

func TestMQTTPublisher_Failures(t *testing.T) {
	client := &fakeClient{token: &fakeToken{finished: false}}
	pub := NewMQTTPublisherWithClient(client, "", 0)
	assert.Equal(t, "vehicle/status", pub.Topic(VehicleStatusChanged))

	err := pub.Publish(context.Background(), Event{Name: VehicleStatusChanged})
	assert.ErrorIs(t, err, ErrPublishTimeout)

	client.token = &fakeToken{finished: true, err: errors.New("not connected")}
	err = pub.Publish(context.Background(), Event{Name: VehicleStatusChanged})
	assert.EqualError(t, err, "not connected")
}

type failingPublisher struct{ NopPublisher }

func (failingPublisher) Publish(context.Context, Event) error { return errors.New("down") }

func TestCountingPublisher(t *testing.T) {
	reg := prometheus.NewRegistry()
	pub := NewCountingPublisher(NopPublisher{}, reg)

	require.NoError(t, pub.Publish(context.Background(), Event{Name: ReservationCreated}))
	require.NoError(t, pub.Publish(context.Background(), Event{Name: ReservationCreated}))
	require.NoError(t, pub.Publish(context.Background(), Event{Name: ReservationCancelled}))

	assert.Equal(t, 2.0, testutil.ToFloat64(pub.events.WithLabelValues(ReservationCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(pub.events.WithLabelValues(ReservationCancelled)))

	failing := NewCountingPublisher(failingPublisher{}, prometheus.NewRegistry())
	assert.Error(t, failing.Publish(context.Background(), Event{Name: VehicleCreated}))
	assert.Equal(t, 1.0, testutil.ToFloat64(failing.failed.WithLabelValues(VehicleCreated)))
	failing.Close()
}

func TestOpen_NoBroker(t *testing.T) {
	pub, err := Open(config.MQTTConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, pub)
	assert.NoError(t, pub.Publish(context.Background(), Event{Name: VehicleCreated}))
}
