package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.ORDER_PENDING, constants.ORDER_COOKING, true},
		{constants.ORDER_PENDING, constants.ORDER_CANCELLED, true},
		{constants.ORDER_PENDING, constants.ORDER_DENIED, true},
		{constants.ORDER_PENDING, constants.ORDER_SERVED, false},
		{constants.ORDER_PENDING, constants.ORDER_PAID, false},
		{constants.ORDER_COOKING, constants.ORDER_SERVED, true},
		{constants.ORDER_COOKING, constants.ORDER_CANCELLED, false},
		{constants.ORDER_COOKING, constants.ORDER_PAID, false},
		{constants.ORDER_SERVED, constants.ORDER_PAID, true},
		{constants.ORDER_SERVED, constants.ORDER_CANCELLED, false},
		{constants.ORDER_PAID, constants.ORDER_PENDING, false},
		{constants.ORDER_PAID, constants.ORDER_COOKING, false},
		{constants.ORDER_CANCELLED, constants.ORDER_PENDING, false},
		{constants.ORDER_DENIED, constants.ORDER_COOKING, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionOrderHappyPath(t *testing.T) {
	db := setupTestDB(t)
	order := createTestOrder(t, db, constants.ORDER_PENDING)

	staff := model.Account{Username: "staff01", Password: "x", Role: constants.ROLE_STAFF, Active: true}
	require.NoError(t, db.Create(&staff).Error)
	staffId := staff.ID

	updated, err := TransitionOrder(order.ID, constants.ORDER_COOKING, &staffId)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_COOKING, updated.Status)
	require.NotNil(t, updated.StaffId)
	assert.Equal(t, staffId, *updated.StaffId)

	updated, err = TransitionOrder(order.ID, constants.ORDER_SERVED, &staffId)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_SERVED, updated.Status)
	assert.Equal(t, constants.PAYMENT_UNPAID, updated.PaymentStatus)
	assert.Nil(t, updated.PaidAt)
}

func TestTransitionOrderToPaidSetsPaymentFields(t *testing.T) {
	db := setupTestDB(t)
	order := createTestOrder(t, db, constants.ORDER_SERVED)

	updated, err := TransitionOrder(order.ID, constants.ORDER_PAID, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAID, updated.Status)
	assert.Equal(t, constants.PAYMENT_PAID, updated.PaymentStatus)
	require.NotNil(t, updated.PaidAt)
}

func TestTransitionOrderRejectsInvalidMoves(t *testing.T) {
	db := setupTestDB(t)

	cases := []struct {
		from string
		to   string
	}{
		{constants.ORDER_PENDING, constants.ORDER_PAID},
		{constants.ORDER_COOKING, constants.ORDER_CANCELLED},
		{constants.ORDER_SERVED, constants.ORDER_CANCELLED},
		{constants.ORDER_PAID, constants.ORDER_PENDING},
		{constants.ORDER_CANCELLED, constants.ORDER_COOKING},
		{constants.ORDER_DENIED, constants.ORDER_SERVED},
	}

	for _, tc := range cases {
		order := createTestOrder(t, db, tc.from)
		_, err := TransitionOrder(order.ID, tc.to, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)

		// Đơn không bị đụng tới
		var reloaded model.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, tc.from, reloaded.Status)
	}
}

func TestTransitionOrderNotFound(t *testing.T) {
	setupTestDB(t)
	_, err := TransitionOrder(99999, constants.ORDER_COOKING, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestTransitionOrderPublishesToSubscribers(t *testing.T) {
	db := setupTestDB(t)
	order := createTestOrder(t, db, constants.ORDER_PENDING)

	customerConn := newFakeConn()
	adminConn := newFakeConn()
	EventHub.Subscribe(OrderTopic(order.ID), customerConn)
	EventHub.Subscribe(AdminTopic, adminConn)
	defer EventHub.Unsubscribe(OrderTopic(order.ID), customerConn)
	defer EventHub.Unsubscribe(AdminTopic, adminConn)

	_, err := TransitionOrder(order.ID, constants.ORDER_COOKING, nil)
	require.NoError(t, err)

	require.Len(t, customerConn.messages, 1)
	require.Len(t, adminConn.messages, 1)

	payload, ok := customerConn.messages[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "order_updated", payload["event"])
	published, ok := payload["order"].(*model.Order)
	require.True(t, ok)
	assert.Equal(t, constants.ORDER_COOKING, published.Status)
}
