package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setVNPayEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VNP_TMNCODE", "TESTCODE")
	t.Setenv("VNP_HASHSECRET", testHashSecret)
	t.Setenv("VNP_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	t.Setenv("APP_URL", "http://localhost:8002")
}

func TestInitiatePaymentGuards(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	for _, status := range []string{
		constants.ORDER_PENDING,
		constants.ORDER_COOKING,
		constants.ORDER_CANCELLED,
		constants.ORDER_DENIED,
	} {
		order := createTestOrder(t, db, status)
		_, _, err := InitiatePayment(order.ID, "127.0.0.1")
		assert.ErrorIs(t, err, ErrNotPayable, "status %s", status)
	}

	// Đơn đã trả rồi cũng không thanh toán lại được
	paid := createTestOrder(t, db, constants.ORDER_SERVED)
	require.NoError(t, db.Model(paid).Update("payment_status", constants.PAYMENT_PAID).Error)
	_, _, err := InitiatePayment(paid.ID, "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotPayable)

	_, _, err = InitiatePayment(99999, "127.0.0.1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestInitiatePaymentCreatesPendingPayment(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	// total_amount cache bị lệch, initiate phải tự sửa từ chi tiết đơn
	require.NoError(t, db.Model(order).Update("total_amount", 999).Error)

	paymentUrl, payment, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, constants.PAYMENT_PENDING, payment.PaymentStatus)
	assert.Equal(t, int64(130000), payment.VnpAmount)
	assert.True(t, strings.Contains(paymentUrl, "vnp_TxnRef="+payment.VnpTxnRef))
	assert.True(t, strings.Contains(paymentUrl, "vnp_Amount=13000000"))

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, int64(130000), reloaded.TotalAmount)
	assert.Equal(t, constants.ORDER_SERVED, reloaded.Status)
}

func TestInitiatePaymentDistinctTxnRefs(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)

	_, first, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)
	_, second, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	assert.NotEqual(t, first.VnpTxnRef, second.VnpTxnRef)

	var count int64
	db.Model(&model.Payment{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestReconcileCallbackSuccess(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	_, payment, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	adminConn := newFakeConn()
	EventHub.Subscribe(AdminTopic, adminConn)
	defer EventHub.Unsubscribe(AdminTopic, adminConn)

	result, err := ReconcileCallback(signedCallback(payment.VnpTxnRef, payment.VnpAmount, "00"))
	require.NoError(t, err)

	assert.Equal(t, constants.PAYMENT_SUCCESS, result.PaymentStatus)
	assert.Equal(t, "14226112", result.GatewayTransactionNo)
	assert.Equal(t, "00", result.GatewayResponseCode)
	assert.Equal(t, "NCB", result.BankCode)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, constants.ORDER_PAID, reloaded.Status)
	assert.Equal(t, constants.PAYMENT_PAID, reloaded.PaymentStatus)
	require.NotNil(t, reloaded.PaidAt)

	// Dashboard staff nhận fanout sau commit
	require.Len(t, adminConn.messages, 1)
}

func TestReconcileCallbackIdempotentReplay(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	_, payment, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	query := signedCallback(payment.VnpTxnRef, payment.VnpAmount, "00")
	_, err = ReconcileCallback(query)
	require.NoError(t, err)

	var afterFirst model.Order
	require.NoError(t, db.First(&afterFirst, order.ID).Error)
	firstPaidAt := afterFirst.PaidAt

	adminConn := newFakeConn()
	EventHub.Subscribe(AdminTopic, adminConn)
	defer EventHub.Unsubscribe(AdminTopic, adminConn)

	// Cổng retry cùng một callback: trả kết quả đã ghi, không side effect lần hai
	replayed, err := ReconcileCallback(signedCallback(payment.VnpTxnRef, payment.VnpAmount, "00"))
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_SUCCESS, replayed.PaymentStatus)

	var afterReplay model.Order
	require.NoError(t, db.First(&afterReplay, order.ID).Error)
	assert.Equal(t, constants.ORDER_PAID, afterReplay.Status)
	assert.Equal(t, firstPaidAt.Unix(), afterReplay.PaidAt.Unix())
	assert.Empty(t, adminConn.messages)
}

func TestReconcileCallbackInvalidSignature(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	_, payment, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	query := signedCallback(payment.VnpTxnRef, payment.VnpAmount, "00")
	query.Set("vnp_SecureHash", "deadbeef")

	_, err = ReconcileCallback(query)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Không state nào bị đụng tới
	var reloadedPayment model.Payment
	require.NoError(t, db.First(&reloadedPayment, payment.ID).Error)
	assert.Equal(t, constants.PAYMENT_PENDING, reloadedPayment.PaymentStatus)

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_SERVED, reloadedOrder.Status)
}

func TestReconcileCallbackUnknownTxnRef(t *testing.T) {
	setupTestDB(t)
	setVNPayEnv(t)

	_, err := ReconcileCallback(signedCallback("khong-ton-tai", 130000, "00"))
	assert.ErrorIs(t, err, ErrUnknownTransaction)
}

func TestReconcileCallbackAmountMismatch(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	_, payment, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	// Chữ ký hợp lệ nhưng số tiền không khớp số đã báo giá
	result, err := ReconcileCallback(signedCallback(payment.VnpTxnRef, payment.VnpAmount-1000, "00"))
	assert.ErrorIs(t, err, ErrAmountMismatch)

	require.NotNil(t, result)
	assert.Equal(t, constants.PAYMENT_FAILED, result.PaymentStatus)
	assert.NotEmpty(t, result.FailReason)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, constants.ORDER_SERVED, reloaded.Status)
	assert.Equal(t, constants.PAYMENT_UNPAID, reloaded.PaymentStatus)
}

func TestReconcileCallbackFailureCodeThenRetry(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	_, payment, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	// Khách hủy ở cổng: Payment chốt FAILED, đơn giữ nguyên
	failed, err := ReconcileCallback(signedCallback(payment.VnpTxnRef, payment.VnpAmount, "24"))
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_FAILED, failed.PaymentStatus)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, constants.ORDER_SERVED, reloaded.Status)
	assert.Equal(t, constants.PAYMENT_UNPAID, reloaded.PaymentStatus)

	// Khách thử lại với lượt thanh toán mới, lần này thành công
	_, retry, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	succeeded, err := ReconcileCallback(signedCallback(retry.VnpTxnRef, retry.VnpAmount, "00"))
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_SUCCESS, succeeded.PaymentStatus)

	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, constants.ORDER_PAID, reloaded.Status)
}

func TestReconcileCallbackStalePaymentAfterOrderPaid(t *testing.T) {
	db := setupTestDB(t)
	setVNPayEnv(t)

	order := createTestOrder(t, db, constants.ORDER_SERVED)
	_, first, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)
	_, second, err := InitiatePayment(order.ID, "127.0.0.1")
	require.NoError(t, err)

	_, err = ReconcileCallback(signedCallback(first.VnpTxnRef, first.VnpAmount, "00"))
	require.NoError(t, err)

	// Lượt PENDING cũ báo thành công sau khi đơn đã PAID: bị từ chối, rollback
	_, err = ReconcileCallback(signedCallback(second.VnpTxnRef, second.VnpAmount, "00"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var staleReloaded model.Payment
	require.NoError(t, db.First(&staleReloaded, second.ID).Error)
	assert.Equal(t, constants.PAYMENT_PENDING, staleReloaded.PaymentStatus)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, constants.ORDER_PAID, reloaded.Status)
}
