package model

type Account struct {
	DTO
	Username     string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password     string `gorm:"not null" validate:"required,min=6,max=50" json:"-"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AccessToken  string `gorm:"-" json:"accessToken,omitempty"`
	RefreshToken string `gorm:"-" json:"refreshToken,omitempty"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	Role         string `json:"role"` // ADMIN, MANAGER, STAFF
}

type Accounts []Account

type CreateAccountInput struct {
	Username string `validate:"required,min=3,max=50" json:"username"`
	Password string `validate:"required,min=6,max=50" json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `validate:"required,oneof=ADMIN MANAGER STAFF" json:"role"`
}

type UpdateAccountInput struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Active   *bool   `json:"active,omitempty"` // bật/tắt tài khoản
	Role     *string `json:"role,omitempty"`   // thay đổi quyền (rất cẩn thận)
}

type FilterAccount struct {
	Pagination
	SearchKey string  `json:"searchKey"`
	Active    *bool   `json:"active"`
	Role      *string `json:"role"`
}
