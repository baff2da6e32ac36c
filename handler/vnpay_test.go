package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strconv"
	"testing"

	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashSecret = "test-secret-key"

func newTestVNPay() *VNPay {
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    "TESTCODE",
			HashSecret: testHashSecret,
			BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:  "http://localhost:8002/vnpay/return",
		},
	}
}

// signedCallback dựng query callback đã ký đúng như phía cổng
func signedCallback(txnRef string, amount int64, responseCode string) url.Values {
	params := url.Values{}
	params.Set("vnp_TxnRef", txnRef)
	params.Set("vnp_Amount", strconv.FormatInt(amount*100, 10))
	params.Set("vnp_ResponseCode", responseCode)
	params.Set("vnp_TransactionNo", "14226112")
	params.Set("vnp_BankCode", "NCB")

	h := hmac.New(sha512.New, []byte(testHashSecret))
	h.Write([]byte(params.Encode()))
	params.Set("vnp_SecureHash", hex.EncodeToString(h.Sum(nil)))
	return params
}

func TestBuildPaymentUrl(t *testing.T) {
	vnpay := newTestVNPay()

	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		Amount:    130000,
		OrderInfo: "Thanh toan don hang 1",
		TxnRef:    "11756700000000000000",
		IPAddr:    "127.0.0.1",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(paymentUrl)
	require.NoError(t, err)
	query := parsed.Query()

	// Quy ước VNPay: số tiền nhân 100
	assert.Equal(t, "13000000", query.Get("vnp_Amount"))
	assert.Equal(t, "VND", query.Get("vnp_CurrCode"))
	assert.Equal(t, "TESTCODE", query.Get("vnp_TmnCode"))
	assert.Equal(t, "11756700000000000000", query.Get("vnp_TxnRef"))
	assert.NotEmpty(t, query.Get("vnp_SecureHash"))

	// URL tự dựng phải qua được chính VerifyCallback
	result := vnpay.VerifyCallback(query)
	assert.True(t, result.IsVerified)
	assert.Equal(t, int64(130000), result.Amount)
}

func TestVerifyCallbackValidSignature(t *testing.T) {
	vnpay := newTestVNPay()
	query := signedCallback("123456", 130000, "00")

	result := vnpay.VerifyCallback(query)
	assert.True(t, result.IsVerified)
	assert.True(t, result.IsSuccess)
	assert.Equal(t, "123456", result.TxnRef)
	assert.Equal(t, int64(130000), result.Amount)
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "NCB", result.BankCode)
}

func TestVerifyCallbackFailureCode(t *testing.T) {
	vnpay := newTestVNPay()
	query := signedCallback("123456", 130000, "24")

	result := vnpay.VerifyCallback(query)
	assert.True(t, result.IsVerified)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "24", result.ResponseCode)
}

func TestVerifyCallbackTamperedAmount(t *testing.T) {
	vnpay := newTestVNPay()
	query := signedCallback("123456", 130000, "00")

	// Sửa số tiền sau khi ký
	query.Set("vnp_Amount", "100")

	result := vnpay.VerifyCallback(query)
	assert.False(t, result.IsVerified)
	assert.False(t, result.IsSuccess)
}

func TestVerifyCallbackMissingHash(t *testing.T) {
	vnpay := newTestVNPay()
	query := url.Values{}
	query.Set("vnp_TxnRef", "123456")
	query.Set("vnp_ResponseCode", "00")

	result := vnpay.VerifyCallback(query)
	assert.False(t, result.IsVerified)
}

func TestVerifyCallbackWrongSecret(t *testing.T) {
	query := signedCallback("123456", 130000, "00")

	other := newTestVNPay()
	other.Config.HashSecret = "some-other-secret"

	result := other.VerifyCallback(query)
	assert.False(t, result.IsVerified)
}
