package constants

// Vai trò tài khoản
const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_MANAGER = "MANAGER"
	ROLE_STAFF   = "STAFF"
)

// Trạng thái đơn hàng
const (
	ORDER_PENDING   = "PENDING"
	ORDER_COOKING   = "COOKING"
	ORDER_SERVED    = "SERVED"
	ORDER_PAID      = "PAID"
	ORDER_CANCELLED = "CANCELLED"
	ORDER_DENIED    = "DENIED"
)

// Trạng thái thanh toán của đơn hàng
const (
	PAYMENT_UNPAID = "UNPAID"
	PAYMENT_PAID   = "PAID"
)

// Trạng thái bản ghi thanh toán
const (
	PAYMENT_PENDING = "PENDING"
	PAYMENT_SUCCESS = "SUCCESS"
	PAYMENT_FAILED  = "FAILED"
)

// Trạng thái bàn
const (
	TABLE_AVAILABLE = "AVAILABLE"
	TABLE_OCCUPIED  = "OCCUPIED"
)

// Thông báo lỗi
const (
	MISSING_LOGIN_INPUT                   = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME                      = "Tên đăng nhập không tồn tại"
	INVALID_PASSWORD                      = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE                    = "Tài khoản đã bị khóa"
	NOT_ADMIN                             = "Không có quyền quản trị"
	ERROR_INTERNAL_ERROR                  = "Lỗi hệ thống"
	ERROR_INPUT                           = "Dữ liệu đầu vào không hợp lệ"
	ERROR_CREATE                          = "Tạo mới thất bại"
	ERROR_EDIT                            = "Cập nhật thất bại"
	ERROR_DELETE                          = "Xóa thất bại"
	NOT_FOUND_RECORDS                     = "Không tìm thấy dữ liệu"
	CAN_NOT_HASH_PASSWORD                 = "Không thể mã hóa mật khẩu"
	DATA_INPUT_IS_NOT_NUMBER              = "Tham số phải là số"
	NEW_PASSWORD_NOT_SAME_REPEAT_PASSWORD = "Mật khẩu nhập lại không khớp"
	ROLE_NOT_EXISTS                       = "Vai trò không tồn tại"
)

// Mã phản hồi của VNPay
const (
	VNP_RESPONSE_SUCCESS = "00"
)
