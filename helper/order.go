package helper

import (
	"fmt"
	"restaurant_manager/model"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratePublicOrderCode tạo mã đơn công khai dạng ORD-XXXXXXXX
func GeneratePublicOrderCode() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8]))
}

// ComputeOrderTotal tính lại tổng tiền từ chi tiết đơn trong DB.
// Luôn tính từ nguồn, không tin giá trị total_amount đang cache trên đơn.
func ComputeOrderTotal(tx *gorm.DB, orderId uint) (int64, error) {
	var total int64
	err := tx.Model(&model.OrderDetail{}).
		Select("COALESCE(SUM(quantity * price_at_order), 0)").
		Where("order_id = ?", orderId).
		Scan(&total).Error
	return total, err
}
