package model

import "time"

// RevenueReport là ảnh chụp doanh thu theo ngày, do cron ghi lúc nửa đêm
type RevenueReport struct {
	DTO
	Date       time.Time `gorm:"uniqueIndex" json:"date"`
	OrderCount int64     `json:"orderCount"` // số đơn PAID trong ngày
	Revenue    int64     `json:"revenue"`    // tổng tiền, đơn vị VND
}
