package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(id string, vehicleID, buf int) *Client {
	return &Client{ID: id, Send: make(chan []byte, buf), VehicleID: vehicleID}
}

func TestDispatchDropsSlowClientWithoutBlocking(t *testing.T) {
	h := NewWSHub(nil)

	slow := newHubClient("slow", 0, 1)
	slow.Send <- []byte("backlog") // buffer full
	healthy := newHubClient("healthy", 0, 4)
	h.clients[slow] = true
	h.clients[healthy] = true

	done := make(chan struct{})
	go func() {
		h.dispatch(telemetryFrame{vehicleID: 7, data: []byte("frame")})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on a full client buffer")
	}

	// The slow client is gone and its channel closed behind the backlog.
	assert.NotContains(t, h.clients, slow)
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)

	// The healthy client still got the frame and stays registered.
	require.Len(t, healthy.Send, 1)
	assert.Equal(t, []byte("frame"), <-healthy.Send)
	assert.Contains(t, h.clients, healthy)
}

func TestDispatchHonorsVehicleFilter(t *testing.T) {
	h := NewWSHub(nil)

	all := newHubClient("all", 0, 4)
	mine := newHubClient("mine", 7, 4)
	other := newHubClient("other", 8, 4)
	for _, c := range []*Client{all, mine, other} {
		h.clients[c] = true
	}

	h.dispatch(telemetryFrame{vehicleID: 7, data: []byte("frame")})

	assert.Len(t, all.Send, 1)
	assert.Len(t, mine.Send, 1)
	assert.Empty(t, other.Send)
}
