package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"log"
	"net/url"
	"os"
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// VNPay Service
type VNPay struct {
	Config model.VNPayConfig
}

func NewVNPay() *VNPay {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
	}
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    os.Getenv("VNP_TMNCODE"),
			HashSecret: os.Getenv("VNP_HASHSECRET"),
			BaseURL:    os.Getenv("VNP_URL"),
			ReturnURL:  os.Getenv("APP_URL") + "/vnpay/return",
			IPNURL:     os.Getenv("APP_URL") + "/vnpay/ipn",
		},
	}
}

// Tạo Payment URL
func (v *VNPay) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	// Params
	params := url.Values{}
	params.Add("vnp_Version", "2.1.0")
	params.Add("vnp_Command", "pay")
	params.Add("vnp_TmnCode", v.Config.TmnCode)
	params.Add("vnp_Amount", strconv.FormatInt(req.Amount*100, 10)) // VND * 100
	params.Add("vnp_CreateDate", time.Now().Format("20060102150405"))
	params.Add("vnp_CurrCode", "VND")
	params.Add("vnp_IpAddr", req.IPAddr)
	params.Add("vnp_Locale", "vn")
	params.Add("vnp_OrderInfo", req.OrderInfo)
	params.Add("vnp_OrderType", "other")
	params.Add("vnp_ReturnUrl", v.Config.ReturnURL)
	params.Add("vnp_TxnRef", req.TxnRef)
	params.Add("vnp_ExpireDate", time.Now().Add(15*time.Minute).Format("20060102150405"))

	// Sort & Hash (url.Values.Encode đã sắp theo key)
	query := params.Encode()
	hash := v.generateHash(query)
	fullQuery := query + "&vnp_SecureHash=" + hash

	// Build URL
	return v.Config.BaseURL + "?" + fullQuery, nil
}

// VerifyCallback kiểm tra chữ ký callback (return URL lẫn IPN dùng chung)
func (v *VNPay) VerifyCallback(query url.Values) model.PaymentResponse {
	secureHash := query.Get("vnp_SecureHash")
	query.Del("vnp_SecureHash")
	query.Del("vnp_SecureHashType")

	// Re-hash và so sánh constant-time, tránh timing attack
	expectedHash := v.generateHash(query.Encode())
	if !hmac.Equal([]byte(secureHash), []byte(expectedHash)) {
		return model.PaymentResponse{IsVerified: false, Message: "Invalid hash"}
	}

	txnRef := query.Get("vnp_TxnRef")
	rawAmount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	responseCode := query.Get("vnp_ResponseCode")

	resp := model.PaymentResponse{
		IsVerified:    true,
		TxnRef:        txnRef,
		Amount:        rawAmount / 100, // bỏ quy ước x100 của VNPay ngay tại biên
		ResponseCode:  responseCode,
		TransactionNo: query.Get("vnp_TransactionNo"),
		BankCode:      query.Get("vnp_BankCode"),
		SecureHash:    secureHash,
	}

	if responseCode == constants.VNP_RESPONSE_SUCCESS {
		resp.IsSuccess = true
		return resp
	}

	resp.Message = "Payment failed"
	return resp
}

// Helpers
func (v *VNPay) generateHash(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
