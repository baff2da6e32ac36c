package model

type Payment struct {
	DTO
	OrderId              uint   `gorm:"not null;index" json:"orderId"`
	VnpTxnRef            string `gorm:"uniqueIndex;size:40" json:"vnpTxnRef"` // khóa idempotency cho callback
	VnpAmount            int64  `gorm:"not null" json:"vnpAmount"`            // số tiền đã báo giá cho cổng, đơn vị VND
	PaymentStatus        string `gorm:"default:PENDING" json:"paymentStatus"` // PENDING, SUCCESS, FAILED
	GatewayTransactionNo string `json:"gatewayTransactionNo"`
	GatewayResponseCode  string `json:"gatewayResponseCode"`
	GatewaySecureHash    string `json:"-"`
	BankCode             string `json:"bankCode"`
	FailReason           string `json:"failReason"`

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type CreatePaymentInput struct {
	OrderId uint `json:"orderId" validate:"required,gt=0"`
}
