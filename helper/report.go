package helper

import (
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"time"

	"github.com/robfig/cron/v3"
)

var reportScheduler *cron.Cron

// SnapshotDailyRevenue chốt doanh thu của ngày hôm trước vào bảng revenue_reports
func SnapshotDailyRevenue() {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var revenue int64
	var orderCount int64

	db := database.DB
	db.Model(&model.Order{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", constants.ORDER_PAID, dayStart, dayEnd).
		Count(&orderCount)
	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE status = ? AND paid_at >= ? AND paid_at < ?
    `, constants.ORDER_PAID, dayStart, dayEnd).Scan(&revenue)

	report := model.RevenueReport{Date: dayStart, OrderCount: orderCount, Revenue: revenue}
	if err := db.Where(model.RevenueReport{Date: dayStart}).
		Assign(model.RevenueReport{OrderCount: orderCount, Revenue: revenue}).
		FirstOrCreate(&report).Error; err != nil {
		log.Printf("Lỗi chốt doanh thu ngày %s: %v", dayStart.Format("2006-01-02"), err)
		return
	}
	log.Printf("Đã chốt doanh thu %s: %d đơn, %dđ", dayStart.Format("2006-01-02"), orderCount, revenue)
}

func StartRevenueScheduler() {
	reportScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy 00:10 mỗi ngày
	_, err := reportScheduler.AddFunc("10 0 * * *", SnapshotDailyRevenue)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler doanh thu: %v", err)
		return
	}

	reportScheduler.Start()
	log.Println("Scheduler doanh thu đã khởi động (00:10 mỗi ngày)")
}

func StopRevenueScheduler() {
	if reportScheduler != nil {
		reportScheduler.Stop()
	}
}
