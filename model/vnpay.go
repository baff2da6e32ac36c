package model

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	IPNURL     string
}

type PaymentRequest struct {
	Amount    int64  `json:"amount"` // VND, chưa nhân 100
	OrderInfo string `json:"orderInfo"`
	TxnRef    string `json:"txnRef"`
	IPAddr    string `json:"ipAddr"`
}

type PaymentResponse struct {
	IsVerified    bool   `json:"isVerified"` // chữ ký hợp lệ
	IsSuccess     bool   `json:"isSuccess"`  // cổng báo thành công (mã 00)
	TxnRef        string `json:"txnRef"`
	Amount        int64  `json:"amount"` // VND, đã chia lại 100 tại biên
	ResponseCode  string `json:"responseCode"`
	TransactionNo string `json:"transactionNo"`
	BankCode      string `json:"bankCode"`
	SecureHash    string `json:"-"`
	Message       string `json:"message"`
}
