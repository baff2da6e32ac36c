package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	messages []interface{}
	writeErr error
	closed   bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.messages = append(f.messages, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestHubPublishReachesOnlySubscribedTopic(t *testing.T) {
	hub := NewHub()
	orderConn := newFakeConn()
	adminConn := newFakeConn()

	hub.Subscribe(OrderTopic(1), orderConn)
	hub.Subscribe(AdminTopic, adminConn)

	hub.Publish(OrderTopic(1), "hello")

	assert.Len(t, orderConn.messages, 1)
	assert.Empty(t, adminConn.messages)
}

func TestHubSubscribeIdempotent(t *testing.T) {
	hub := NewHub()
	conn := newFakeConn()

	hub.Subscribe(OrderTopic(2), conn)
	hub.Subscribe(OrderTopic(2), conn)
	assert.Equal(t, 1, hub.Count(OrderTopic(2)))

	hub.Publish(OrderTopic(2), "once")
	assert.Len(t, conn.messages, 1)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	conn := newFakeConn()

	hub.Subscribe(OrderTopic(3), conn)
	hub.Unsubscribe(OrderTopic(3), conn)
	// gỡ lần hai vô hại
	hub.Unsubscribe(OrderTopic(3), conn)

	hub.Publish(OrderTopic(3), "dropped")
	assert.Empty(t, conn.messages)
	assert.Equal(t, 0, hub.Count(OrderTopic(3)))
}

func TestHubPrunesFailedConnections(t *testing.T) {
	hub := NewHub()
	good := newFakeConn()
	bad := newFakeConn()
	bad.writeErr = errors.New("broken pipe")

	hub.Subscribe(AdminTopic, good)
	hub.Subscribe(AdminTopic, bad)

	hub.Publish(AdminTopic, "first")
	assert.Len(t, good.messages, 1)
	assert.True(t, bad.closed)
	assert.Equal(t, 1, hub.Count(AdminTopic))

	// Kết nối hỏng không nhận gì nữa
	hub.Publish(AdminTopic, "second")
	assert.Len(t, good.messages, 2)
	assert.Empty(t, bad.messages)
}

func TestHubCloseTopic(t *testing.T) {
	hub := NewHub()
	first := newFakeConn()
	second := newFakeConn()

	hub.Subscribe(OrderTopic(5), first)
	hub.Subscribe(OrderTopic(5), second)

	hub.CloseTopic(OrderTopic(5))

	assert.True(t, first.closed)
	assert.True(t, second.closed)
	assert.Equal(t, 0, hub.Count(OrderTopic(5)))
	assert.Empty(t, hub.Topics())
}
