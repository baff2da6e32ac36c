package handler

import (
	"fmt"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB trỏ database.DB sang sqlite in-memory riêng cho từng test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.Migrate(db)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestTable(t *testing.T, db *gorm.DB, number int) *model.Table {
	t.Helper()
	table := &model.Table{
		Number: number,
		Name:   fmt.Sprintf("Bàn %d", number),
		Seats:  4,
		Status: constants.TABLE_AVAILABLE,
	}
	require.NoError(t, db.Create(table).Error)
	return table
}

func createTestMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *model.MenuItem {
	t.Helper()
	category := &model.Category{Name: "Món chính " + name, Active: true}
	require.NoError(t, db.Create(category).Error)
	item := &model.MenuItem{
		CategoryId: category.ID,
		Name:       name,
		Slug:       fmt.Sprintf("%s-%d", name, category.ID),
		Price:      price,
		Available:  true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// createTestOrder tạo đơn với một món, quantity 2, và tổng tiền khớp chi tiết
func createTestOrder(t *testing.T, db *gorm.DB, status string) *model.Order {
	t.Helper()
	table := createTestTable(t, db, int(atomic.AddInt64(&testDBCounter, 1)))
	item := createTestMenuItem(t, db, fmt.Sprintf("Phở bò %d", table.Number), 65000)

	order := &model.Order{
		PublicCode:    fmt.Sprintf("ORD-TEST%04d", table.Number),
		TableId:       table.ID,
		CustomerName:  "Nguyễn Văn A",
		Status:        status,
		PaymentStatus: constants.PAYMENT_UNPAID,
		TotalAmount:   130000,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&model.OrderDetail{
		OrderId:      order.ID,
		MenuItemId:   item.ID,
		Quantity:     2,
		PriceAtOrder: item.Price,
	}).Error)
	return order
}
