package model

type Category struct {
	DTO
	Name      string     `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	SortOrder int        `gorm:"default:0" json:"sortOrder"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	MenuItems []MenuItem `gorm:"foreignKey:CategoryId" json:"menuItems,omitempty"`
}

type MenuItem struct {
	DTO
	CategoryId  uint     `gorm:"not null;index" json:"categoryId"`
	Category    Category `gorm:"foreignKey:CategoryId" json:"-"`
	Name        string   `gorm:"not null" validate:"required" json:"name"`
	Slug        string   `gorm:"uniqueIndex;size:120" json:"slug"`
	Description string   `json:"description"`
	Price       int64    `gorm:"not null" validate:"required,gt=0" json:"price"` // đơn vị VND
	ImageUrl    string   `json:"imageUrl"`
	Available   bool     `gorm:"not null;default:true" json:"available"`
}

type CreateCategoryInput struct {
	Name      string `validate:"required" json:"name"`
	SortOrder int    `json:"sortOrder"`
}

type CreateMenuItemInput struct {
	CategoryId  uint   `validate:"required,gt=0" json:"categoryId"`
	Name        string `validate:"required" json:"name"`
	Description string `json:"description"`
	Price       int64  `validate:"required,gt=0" json:"price"`
	ImageUrl    string `json:"imageUrl"`
}

type UpdateMenuItemInput struct {
	CategoryId  *uint   `json:"categoryId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageUrl    *string `json:"imageUrl,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type FilterMenu struct {
	Pagination
	SearchKey  string `json:"searchKey"`
	CategoryId *uint  `json:"categoryId"`
	Available  *bool  `json:"available"`
}
