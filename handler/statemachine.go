package handler

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"time"

	"gorm.io/gorm"
)

var (
	ErrInvalidTransition = errors.New("INVALID_TRANSITION")
	ErrOrderNotFound     = errors.New("ORDER_NOT_FOUND")
)

// Bảng chuyển trạng thái đơn hàng. PAID, CANCELLED, DENIED là trạng thái cuối.
// Đơn đã SERVED không hủy được nữa, chỉ còn đường thanh toán.
var orderTransitions = map[string][]string{
	constants.ORDER_PENDING: {constants.ORDER_COOKING, constants.ORDER_CANCELLED, constants.ORDER_DENIED},
	constants.ORDER_COOKING: {constants.ORDER_SERVED},
	constants.ORDER_SERVED:  {constants.ORDER_PAID},
}

func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionOrder là lối đi duy nhất để đổi Order.status.
// Ghi bằng UPDATE có điều kiện trên status hiện tại (compare-and-swap):
// hai request đua nhau trên cùng đơn thì chỉ một bên thắng,
// bên thua nhận ErrInvalidTransition và đơn không bị đụng tới.
// Fanout chỉ chạy SAU khi commit.
//
// ApplyTransition dùng chung cho cả đường staff lẫn đường reconcile thanh toán,
// reconcile gọi trực tiếp để cập nhật Payment và Order trong cùng một transaction.
func ApplyTransition(tx *gorm.DB, orderId uint, targetStatus string, staffId *uint) error {
	var order model.Order
	if err := tx.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !CanTransition(order.Status, targetStatus) {
		return ErrInvalidTransition
	}

	updates := map[string]interface{}{
		"status":     targetStatus,
		"updated_at": time.Now(),
	}
	if staffId != nil {
		updates["staff_id"] = *staffId
	}
	if targetStatus == constants.ORDER_PAID {
		updates["payment_status"] = constants.PAYMENT_PAID
		updates["paid_at"] = time.Now()
	}

	result := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", orderId, order.Status).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Một request khác vừa đổi trạng thái trước ta
		return ErrInvalidTransition
	}
	return nil
}

func TransitionOrder(orderId uint, targetStatus string, staffId *uint) (*model.Order, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return ApplyTransition(tx, orderId, targetStatus, staffId)
	})
	if err != nil {
		return nil, err
	}

	hydrated, err := GetHydratedOrder(orderId)
	if err != nil {
		return nil, err
	}

	PublishOrderUpdate(hydrated)

	if targetStatus == constants.ORDER_PAID && hydrated.Email != "" {
		utils.SendReceiptEmail(hydrated.Email, BuildReceiptData(hydrated))
	}

	return hydrated, nil
}

// BuildReceiptData dựng dữ liệu hóa đơn từ đơn đã hydrate
func BuildReceiptData(order *model.Order) utils.ReceiptData {
	items := make([]utils.ReceiptItem, 0, len(order.Details))
	for _, detail := range order.Details {
		items = append(items, utils.ReceiptItem{
			Name:     detail.MenuItem.Name,
			Quantity: detail.Quantity,
			Price:    detail.PriceAtOrder,
			SubTotal: int64(detail.Quantity) * detail.PriceAtOrder,
		})
	}
	paidAt := ""
	if order.PaidAt != nil {
		paidAt = order.PaidAt.Format("15:04 - 02/01/2006")
	}
	return utils.ReceiptData{
		OrderCode:    order.PublicCode,
		TableName:    order.Table.Name,
		CustomerName: order.CustomerName,
		Items:        items,
		TotalAmount:  order.TotalAmount,
		PaidAt:       paidAt,
	}
}
