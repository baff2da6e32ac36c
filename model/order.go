package model

import "time"

type Order struct {
	DTO
	PublicCode    string        `gorm:"uniqueIndex;size:20" json:"publicCode"` // Mã đơn hàng công khai (ORD-XXXXXXXX)
	TableId       uint          `gorm:"not null;index" json:"tableId"`
	Table         Table         `gorm:"foreignKey:TableId" json:"table"`
	CustomerName  string        `json:"customerName"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	TotalAmount   int64         `json:"totalAmount"` // tổng tiền, đơn vị VND
	Status        string        `gorm:"default:PENDING;index" json:"status"`
	PaymentStatus string        `gorm:"default:UNPAID" json:"paymentStatus"` // UNPAID, PAID
	StaffId       *uint         `json:"staffId"`                             // nhân viên thao tác gần nhất
	Staff         *Account      `gorm:"foreignKey:StaffId" json:"staff,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	Details       []OrderDetail `gorm:"foreignKey:OrderId" json:"details"`
}

// OrderDetail là món trong đơn; giá chụp tại thời điểm đặt, không sửa sau khi tạo
type OrderDetail struct {
	DTO
	OrderId      uint     `gorm:"not null;index" json:"orderId"`
	MenuItemId   uint     `gorm:"not null" json:"menuItemId"`
	MenuItem     MenuItem `gorm:"foreignKey:MenuItemId" json:"menuItem"`
	Quantity     int      `gorm:"not null" validate:"required,gt=0" json:"quantity"`
	PriceAtOrder int64    `gorm:"not null" json:"priceAtOrder"`
	Note         string   `json:"note"`
}

type OrderItemInput struct {
	MenuItemId uint   `validate:"required,gt=0" json:"menuItemId"`
	Quantity   int    `validate:"required,gt=0" json:"quantity"`
	Note       string `json:"note"`
}

type CreateOrderInput struct {
	TableId      uint             `validate:"required,gt=0" json:"tableId"`
	CustomerName string           `validate:"required" json:"customerName"`
	Phone        string           `json:"phone"`
	Email        string           `validate:"omitempty,email" json:"email"`
	Items        []OrderItemInput `validate:"required,min=1,dive" json:"items"`
}

type UpdateOrderStatusInput struct {
	Status string `validate:"required,oneof=PENDING COOKING SERVED PAID CANCELLED DENIED" json:"status"`
}

type FilterOrder struct {
	Pagination
	Status  *string `json:"status"`
	TableId *uint   `json:"tableId"`
	Date    *string `json:"date"` // YYYY-MM-DD
}
