package database

import (
	"fmt"
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456nh"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456nh"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, FullName: "Quản trị viên", Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	// Bàn mặc định
	for i := 1; i <= 12; i++ {
		table := model.Table{Number: i, Name: fmt.Sprintf("Bàn %d", i), Seats: 4, Status: constants.TABLE_AVAILABLE}
		if err := db.Where(model.Table{Number: i}).FirstOrCreate(&table).Error; err != nil {
			log.Println("failed to seed data for table:", i, "error:", err)
		}
	}

	categories := []model.Category{
		{Name: "Khai vị", SortOrder: 1, Active: true},
		{Name: "Món chính", SortOrder: 2, Active: true},
		{Name: "Đồ uống", SortOrder: 3, Active: true},
		{Name: "Tráng miệng", SortOrder: 4, Active: true},
	}
	for _, category := range categories {
		if err := db.Where(model.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed data for category:", category.Name, "error:", err)
		}
	}
}
