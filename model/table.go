package model

type Table struct {
	DTO
	Number int    `gorm:"uniqueIndex;not null" validate:"required,gt=0" json:"number"`
	Name   string `json:"name"`                            // ví dụ: "Bàn 5 - tầng 2"
	Seats  int    `json:"seats"`                           // số chỗ ngồi
	Status string `gorm:"default:AVAILABLE" json:"status"` // AVAILABLE, OCCUPIED
}

type CreateTableInput struct {
	Number int    `validate:"required,gt=0" json:"number"`
	Name   string `json:"name"`
	Seats  int    `validate:"omitempty,gt=0" json:"seats"`
}

type UpdateTableInput struct {
	Name   *string `json:"name,omitempty"`
	Seats  *int    `json:"seats,omitempty"`
	Status *string `json:"status,omitempty"`
}
