package services

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   int
	fail     bool
}

func (c *recordingConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	if messageType == websocket.TextMessage {
		c.messages = append(c.messages, data)
	}
	return nil
}

func (c *recordingConn) Close() error {
	c.mu.Lock()
	c.closed++
	c.mu.Unlock()
	return nil
}

func TestHubPublishesOnlyToOwner(t *testing.T) {
	hub := NewRealtimeHub()
	phone, laptop, other := &recordingConn{}, &recordingConn{}, &recordingConn{}
	hub.Register(NewWSClient(1, phone))
	hub.Register(NewWSClient(1, laptop))
	hub.Register(NewWSClient(2, other))

	hub.Publish(1, LikeEvent{Type: EventRecipeLiked, RecipeID: 9, LikeCount: 3})

	for _, c := range []*recordingConn{phone, laptop} {
		require.Len(t, c.messages, 1)
		var got LikeEvent
		require.NoError(t, json.Unmarshal(c.messages[0], &got))
		assert.Equal(t, LikeEvent{Type: EventRecipeLiked, RecipeID: 9, LikeCount: 3}, got)
	}
	assert.Empty(t, other.messages)
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewRealtimeHub()
	conn := &recordingConn{}
	c := NewWSClient(5, conn)
	hub.Register(c)
	assert.Equal(t, 1, hub.Connections(5))

	hub.Unregister(c)
	hub.Unregister(c)
	assert.Equal(t, 0, hub.Connections(5))
	assert.Equal(t, 1, conn.closed)

	hub.Publish(5, map[string]string{"type": "noop"})
	assert.Empty(t, conn.messages)
}

func TestHubSurvivesFailingConnection(t *testing.T) {
	hub := NewRealtimeHub()
	good, bad := &recordingConn{}, &recordingConn{fail: true}
	hub.Register(NewWSClient(1, bad))
	hub.Register(NewWSClient(1, good))

	hub.Publish(1, LikeEvent{Type: EventRecipeUnliked, RecipeID: 1})
	assert.Len(t, good.messages, 1)
}

func TestHubConcurrentPublish(t *testing.T) {
	hub := NewRealtimeHub()
	conn := &recordingConn{}
	c := NewWSClient(1, conn)
	hub.Register(c)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Publish(1, LikeEvent{Type: EventRecipeLiked})
		}()
		go func() {
			defer wg.Done()
			_ = c.Ping()
		}()
	}
	wg.Wait()
	assert.Len(t, conn.messages, 20)
}
