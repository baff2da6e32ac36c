package handler

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PlaceOrder tạo đơn hàng mới từ phiên của khách (hoặc staff nhập hộ).
// Đơn + chi tiết + tổng tiền được ghi trong MỘT transaction,
// giá món chụp tại thời điểm đặt nên menu đổi giá sau này không ảnh hưởng.
// POST /api/v1/don-hang
func PlaceOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing input in locals"))
	}

	var order model.Order
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := tx.First(&table, input.TableId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("bàn không tồn tại")
			}
			return err
		}

		order = model.Order{
			PublicCode:    helper.GeneratePublicOrderCode(),
			TableId:       input.TableId,
			CustomerName:  input.CustomerName,
			Phone:         input.Phone,
			Email:         input.Email,
			Status:        constants.ORDER_PENDING,
			PaymentStatus: constants.PAYMENT_UNPAID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total int64
		details := make([]model.OrderDetail, 0, len(input.Items))
		for _, item := range input.Items {
			var menuItem model.MenuItem
			if err := tx.First(&menuItem, "id = ? AND available = ?", item.MenuItemId, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New("món không tồn tại hoặc đã hết")
				}
				return err
			}
			details = append(details, model.OrderDetail{
				OrderId:      order.ID,
				MenuItemId:   menuItem.ID,
				Quantity:     item.Quantity,
				PriceAtOrder: menuItem.Price, // chụp giá tại thời điểm đặt
				Note:         item.Note,
			})
			total += int64(item.Quantity) * menuItem.Price
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		// Tổng tiền ghi cùng transaction với chi tiết
		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return err
		}

		// Đánh dấu bàn có khách
		return tx.Model(&table).Update("status", constants.TABLE_OCCUPIED).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tạo đơn hàng thất bại", err)
	}

	hydrated, err := GetHydratedOrder(order.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Báo cho dashboard staff biết có đơn mới (sau commit)
	PublishOrderUpdate(hydrated)

	return utils.SuccessResponse(c, fiber.StatusCreated, hydrated)
}

// UpdateOrderStatus cho staff đẩy đơn qua trạng thái kế tiếp.
// PAID từ SERVED ở đây là thanh toán tiền mặt, đi chung đường
// commit + fanout với thanh toán qua cổng.
// PATCH /api/v1/order/:orderId/status
func UpdateOrderStatus(c *fiber.Ctx) error {
	accountInfo, _, _, _ := helper.GetInfoAccountFromToken(c)
	if accountInfo.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	orderId, err := c.ParamsInt("orderId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input, ok := c.Locals("input").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing input in locals"))
	}

	order, err := TransitionOrder(uint(orderId), input.Status, &accountInfo.AccountId)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
		case errors.Is(err, ErrInvalidTransition):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chuyển trạng thái không hợp lệ", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrders danh sách đơn cho staff, lọc theo trạng thái / bàn / ngày
// GET /api/v1/order
func GetOrders(c *fiber.Ctx) error {
	filterInput := new(model.FilterOrder)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	query := db.Model(&model.Order{}).
		Preload("Table").
		Preload("Staff").
		Preload("Details").
		Preload("Details.MenuItem")

	if filterInput.Status != nil && *filterInput.Status != "" {
		query = query.Where("status = ?", *filterInput.Status)
	}
	if filterInput.TableId != nil && *filterInput.TableId > 0 {
		query = query.Where("table_id = ?", *filterInput.TableId)
	}
	if filterInput.Date != nil && *filterInput.Date != "" {
		day, err := time.Parse("2006-01-02", *filterInput.Date)
		if err == nil {
			query = query.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
		}
	}

	var totalCount int64
	query.Count(&totalCount)

	var orders []model.Order
	query = utils.ApplyPagination(query, filterInput.Limit, filterInput.Page)
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

// GetOrderDetail trả đơn đầy đủ theo mã công khai (cho khách tra cứu)
// GET /api/v1/don-hang/:orderCode
func GetOrderDetail(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.
		Preload("Table").
		Preload("Details").
		Preload("Details.MenuItem").
		Where("public_code = ?", orderCode).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// CancelOrderByCustomer cho khách rút đơn khi bếp chưa nhận
// POST /api/v1/don-hang/:orderCode/cancel
func CancelOrderByCustomer(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.Where("public_code = ?", orderCode).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	updated, err := TransitionOrder(order.ID, constants.ORDER_CANCELLED, nil)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng đã vào bếp, không thể hủy", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}
