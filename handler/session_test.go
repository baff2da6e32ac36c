package handler

import (
	"restaurant_manager/constants"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepClosedTopics(t *testing.T) {
	db := setupTestDB(t)

	// Đơn đã PAID từ lâu: topic phải bị đóng
	stale := createTestOrder(t, db, constants.ORDER_PAID)
	require.NoError(t, db.Model(stale).Update("updated_at", time.Now().Add(-3*time.Hour)).Error)

	// Đơn PAID mới xong: khách vẫn còn xem hóa đơn, giữ lại
	fresh := createTestOrder(t, db, constants.ORDER_PAID)

	// Đơn đang phục vụ: giữ lại bất kể tuổi
	active := createTestOrder(t, db, constants.ORDER_SERVED)
	require.NoError(t, db.Model(active).Update("updated_at", time.Now().Add(-3*time.Hour)).Error)

	staleConn := newFakeConn()
	freshConn := newFakeConn()
	activeConn := newFakeConn()
	adminConn := newFakeConn()

	EventHub.Subscribe(OrderTopic(stale.ID), staleConn)
	EventHub.Subscribe(OrderTopic(fresh.ID), freshConn)
	EventHub.Subscribe(OrderTopic(active.ID), activeConn)
	EventHub.Subscribe(AdminTopic, adminConn)
	defer func() {
		EventHub.CloseTopic(OrderTopic(fresh.ID))
		EventHub.CloseTopic(OrderTopic(active.ID))
		EventHub.Unsubscribe(AdminTopic, adminConn)
	}()

	SweepClosedTopics()

	assert.True(t, staleConn.closed)
	assert.Equal(t, 0, EventHub.Count(OrderTopic(stale.ID)))

	assert.False(t, freshConn.closed)
	assert.Equal(t, 1, EventHub.Count(OrderTopic(fresh.ID)))

	assert.False(t, activeConn.closed)
	assert.Equal(t, 1, EventHub.Count(OrderTopic(active.ID)))

	// Topic admin không bao giờ bị quét
	assert.False(t, adminConn.closed)
	assert.Equal(t, 1, EventHub.Count(AdminTopic))
}
