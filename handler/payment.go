package handler

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	ErrNotPayable         = errors.New("NOT_PAYABLE")
	ErrInvalidSignature   = errors.New("INVALID_SIGNATURE")
	ErrUnknownTransaction = errors.New("UNKNOWN_TRANSACTION")
	ErrAmountMismatch     = errors.New("AMOUNT_MISMATCH")
)

// InitiatePayment tạo một lượt thanh toán cho đơn SERVED chưa trả tiền.
// Tổng tiền được tính lại từ chi tiết đơn trước khi báo giá cho cổng,
// lệch thì sửa luôn vào đơn trong cùng transaction.
func InitiatePayment(orderId uint, ipAddr string) (string, *model.Payment, error) {
	var payment model.Payment
	var total int64

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.First(&order, orderId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != constants.ORDER_SERVED || order.PaymentStatus != constants.PAYMENT_UNPAID {
			return ErrNotPayable
		}

		var err error
		total, err = helper.ComputeOrderTotal(tx, orderId)
		if err != nil {
			return err
		}
		if total != order.TotalAmount {
			// total_amount cache bị lệch, sửa lại trước khi báo giá
			if err := tx.Model(&model.Order{}).
				Where("id = ?", orderId).
				Update("total_amount", total).Error; err != nil {
				return err
			}
		}

		// vnpTxnRef = orderId + timestamp nano, duy nhất qua các lần retry
		txnRef := fmt.Sprintf("%d%d", orderId, time.Now().UnixNano())
		payment = model.Payment{
			OrderId:       orderId,
			VnpTxnRef:     txnRef,
			VnpAmount:     total,
			PaymentStatus: constants.PAYMENT_PENDING,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return "", nil, err
	}

	vnpay := NewVNPay()
	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		Amount:    total,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %d", orderId),
		TxnRef:    payment.VnpTxnRef,
		IPAddr:    ipAddr,
	})
	if err != nil {
		return "", nil, err
	}

	return paymentUrl, &payment, nil
}

// ReconcileCallback đối soát một callback từ cổng thanh toán, idempotent.
// Callback trùng (retry, replay) trả về kết quả đã ghi, không áp side effect lần hai.
func ReconcileCallback(query url.Values) (*model.Payment, error) {
	vnpay := NewVNPay()

	// 1. Kiểm tra chữ ký trước, sai thì không đụng gì tới state
	result := vnpay.VerifyCallback(query)
	if !result.IsVerified {
		return nil, ErrInvalidSignature
	}

	// 2. Tra Payment theo vnpTxnRef
	var payment model.Payment
	if err := database.DB.Where("vnp_txn_ref = ?", result.TxnRef).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownTransaction
		}
		return nil, err
	}

	// 3. Idempotency guard: đã chốt rồi thì trả kết quả cũ, không làm gì thêm
	if payment.PaymentStatus != constants.PAYMENT_PENDING {
		return &payment, nil
	}

	gatewayFields := map[string]interface{}{
		"gateway_transaction_no": result.TransactionNo,
		"gateway_response_code":  result.ResponseCode,
		"gateway_secure_hash":    result.SecureHash,
		"bank_code":              result.BankCode,
	}

	// 4. Số tiền callback phải khớp chính xác số đã báo giá
	if result.Amount != payment.VnpAmount {
		gatewayFields["payment_status"] = constants.PAYMENT_FAILED
		gatewayFields["fail_reason"] = fmt.Sprintf("số tiền lệch: cổng báo %d, đã báo giá %d", result.Amount, payment.VnpAmount)
		if err := database.DB.Model(&model.Payment{}).
			Where("id = ? AND payment_status = ?", payment.ID, constants.PAYMENT_PENDING).
			Updates(gatewayFields).Error; err != nil {
			return nil, err
		}
		log.Printf("Cảnh báo đối soát: payment %d lệch số tiền, cần kiểm tra thủ công", payment.ID)
		database.DB.First(&payment, payment.ID)
		return &payment, ErrAmountMismatch
	}

	if !result.IsSuccess {
		// 6. Cổng báo thất bại: chốt Payment FAILED, đơn giữ nguyên
		gatewayFields["payment_status"] = constants.PAYMENT_FAILED
		gatewayFields["fail_reason"] = fmt.Sprintf("cổng trả mã %s", result.ResponseCode)
		if err := database.DB.Model(&model.Payment{}).
			Where("id = ? AND payment_status = ?", payment.ID, constants.PAYMENT_PENDING).
			Updates(gatewayFields).Error; err != nil {
			return nil, err
		}
		database.DB.First(&payment, payment.ID)
		return &payment, nil
	}

	// 5. Thành công: chốt Payment + chuyển đơn sang PAID trong MỘT transaction.
	// UPDATE có điều kiện trên PENDING: hai callback trùng chạy song song
	// thì chỉ một bên thắng, bên thua coi như đã chốt từ trước.
	won := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		gatewayFields["payment_status"] = constants.PAYMENT_SUCCESS
		claim := tx.Model(&model.Payment{}).
			Where("id = ? AND payment_status = ?", payment.ID, constants.PAYMENT_PENDING).
			Updates(gatewayFields)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			// Callback song song đã chốt trước, đi đường idempotent
			return nil
		}
		won = true
		return ApplyTransition(tx, payment.OrderId, constants.ORDER_PAID, nil)
	})
	if err != nil {
		return nil, err
	}

	database.DB.First(&payment, payment.ID)

	if won {
		// Fanout + hóa đơn chỉ sau commit, và chỉ từ bên thắng
		hydrated, err := GetHydratedOrder(payment.OrderId)
		if err != nil {
			log.Printf("Lỗi nạp đơn hàng sau thanh toán: %v", err)
			return &payment, nil
		}
		PublishOrderUpdate(hydrated)
		if hydrated.Email != "" {
			utils.SendReceiptEmail(hydrated.Email, BuildReceiptData(hydrated))
		}
	}

	return &payment, nil
}

// POST /payments
func CreatePayment(c *fiber.Ctx) error {
	var input model.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	paymentUrl, payment, err := InitiatePayment(input.OrderId, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
		case errors.Is(err, ErrNotPayable):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng chưa thể thanh toán", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":    "Tạo thanh toán thành công",
		"paymentUrl": paymentUrl,
		"paymentId":  payment.ID,
		"txnRef":     payment.VnpTxnRef,
	})
}

// VNPayCallback xử lý redirect của trình duyệt từ VNPay (GET lẫn POST).
// Đường này luôn kết thúc bằng redirect, kể cả khi lỗi bất ngờ,
// vì trình duyệt của khách không có cách hồi phục nào khác.
func VNPayCallback(c *fiber.Ctx) error {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic khi đối soát callback: %v", r)
			c.Redirect(fmt.Sprintf("%s/payment-error", os.Getenv("APP_URL")))
		}
	}()

	query, err := callbackParams(c)
	if err != nil {
		return c.Redirect(fmt.Sprintf("%s/payment-error", os.Getenv("APP_URL")))
	}

	payment, reconcileErr := ReconcileCallback(query)
	if reconcileErr != nil {
		switch {
		case errors.Is(reconcileErr, ErrInvalidSignature):
			// Có thể là giả mạo, ghi log để soi
			log.Printf("Callback chữ ký sai từ IP %s", c.IP())
			return c.Redirect(fmt.Sprintf("%s/payment-error", os.Getenv("APP_URL")))
		case errors.Is(reconcileErr, ErrUnknownTransaction):
			return c.Redirect(fmt.Sprintf("%s/payment-error", os.Getenv("APP_URL")))
		case errors.Is(reconcileErr, ErrAmountMismatch):
			return c.Redirect(fmt.Sprintf("%s/payment-failed?orderId=%d&code=%s", os.Getenv("APP_URL"), payment.OrderId, payment.GatewayResponseCode))
		default:
			return c.Redirect(fmt.Sprintf("%s/payment-error", os.Getenv("APP_URL")))
		}
	}

	if payment.PaymentStatus == constants.PAYMENT_SUCCESS {
		return c.Redirect(fmt.Sprintf("%s/payment-success?orderId=%d", os.Getenv("APP_URL"), payment.OrderId))
	}
	return c.Redirect(fmt.Sprintf("%s/payment-failed?orderId=%d&code=%s", os.Getenv("APP_URL"), payment.OrderId, payment.GatewayResponseCode))
}

// VNPayIPN xử lý báo server-to-server, trả JSON theo contract của VNPay
func VNPayIPN(c *fiber.Ctx) error {
	query, err := callbackParams(c)
	if err != nil {
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Invalid params"})
	}

	payment, reconcileErr := ReconcileCallback(query)
	if reconcileErr != nil {
		switch {
		case errors.Is(reconcileErr, ErrInvalidSignature):
			return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid signature"})
		case errors.Is(reconcileErr, ErrUnknownTransaction):
			return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
		case errors.Is(reconcileErr, ErrAmountMismatch):
			return c.JSON(fiber.Map{"RspCode": "04", "Message": "Invalid amount"})
		default:
			return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
		}
	}

	if payment.PaymentStatus == constants.PAYMENT_SUCCESS {
		return c.JSON(fiber.Map{"RspCode": "00", "Message": "Success"})
	}
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirmed"})
}

// callbackParams gom tham số callback từ query string hoặc POST body
func callbackParams(c *fiber.Ctx) (url.Values, error) {
	raw := string(c.Request().URI().QueryString())
	if raw == "" {
		raw = string(c.Body())
	}
	return url.ParseQuery(raw)
}

// GetPaymentStatus là đường polling dự phòng cho realtime
// GET /api/v1/don-hang/:orderCode/payment
func GetPaymentStatus(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var found model.Order
	if err := database.DB.Where("public_code = ?", orderCode).First(&found).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	order, err := GetHydratedOrder(found.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	var latestPayment *model.Payment
	var payment model.Payment
	if err := database.DB.Where("order_id = ?", order.ID).Order("created_at desc").First(&payment).Error; err == nil {
		latestPayment = &payment
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId":       order.ID,
		"paymentStatus": order.PaymentStatus,
		"totalAmount":   order.TotalAmount,
		"details":       order.Details,
		"latestPayment": latestPayment,
	})
}
