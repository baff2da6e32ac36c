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
)

func GetAdminStats(c *fiber.Ctx) error {
	_, isAdmin, isManager, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	db := database.DB

	type Stats struct {
		Tables    int64 `json:"tables"`
		MenuItems int64 `json:"menuItems"`
		Staffs    int64 `json:"staffs"`

		TodayRevenue  int64   `json:"todayRevenue"`
		TodayOrders   int64   `json:"todayOrders"`
		PendingOrders int64   `json:"pendingOrders"`
		CookingOrders int64   `json:"cookingOrders"`
		RevenueGrowth float64 `json:"revenueGrowth"` // %
		OrdersGrowth  float64 `json:"ordersGrowth"`  // %
	}

	var stats Stats
	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	db.Model(&model.Table{}).Count(&stats.Tables)
	db.Model(&model.MenuItem{}).Where("available = ?", true).Count(&stats.MenuItems)
	db.Model(&model.Account{}).Where("active = ?", true).Count(&stats.Staffs)

	// Doanh thu hôm nay: tính trên đơn đã PAID
	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE status = 'PAID'
          AND paid_at >= ? AND paid_at < ?
    `, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", todayStart, todayEnd).
		Count(&stats.TodayOrders)
	db.Model(&model.Order{}).Where("status = ?", constants.ORDER_PENDING).Count(&stats.PendingOrders)
	db.Model(&model.Order{}).Where("status = ?", constants.ORDER_COOKING).Count(&stats.CookingOrders)

	// === Hôm qua ===
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	var yesterdayRevenue int64
	var yesterdayOrders int64

	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE status = 'PAID'
          AND paid_at >= ? AND paid_at < ?
    `, yesterdayStart, todayStart).Scan(&yesterdayRevenue)

	db.Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", yesterdayStart, todayStart).
		Count(&yesterdayOrders)

	stats.RevenueGrowth = utils.CalculateGrowth(float64(stats.TodayRevenue), float64(yesterdayRevenue))
	stats.OrdersGrowth = utils.CalculateGrowth(float64(stats.TodayOrders), float64(yesterdayOrders))
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// Doanh thu 7 ngày gần nhất, đọc từ bảng snapshot do cron ghi
func GetRevenueChart(c *fiber.Ctx) error {
	_, isAdmin, isManager, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	db := database.DB
	since := time.Now().AddDate(0, 0, -7)

	var reports []model.RevenueReport
	if err := db.Where("date >= ?", since).Order("date ASC").Find(&reports).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, reports)
}

// Món bán chạy nhất trong khoảng ngày (mặc định 30 ngày)
func GetTopMenuItems(c *fiber.Ctx) error {
	_, isAdmin, isManager, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	days := c.QueryInt("days", 30)
	if days <= 0 || days > 365 {
		days = 30
	}
	limit := c.QueryInt("limit", 5)
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	since := time.Now().AddDate(0, 0, -days)

	type TopItem struct {
		MenuItemId uint   `json:"menuItemId"`
		Name       string `json:"name"`
		Quantity   int64  `json:"quantity"`
		Revenue    int64  `json:"revenue"`
	}

	db := database.DB
	var topItems []TopItem
	err := db.Raw(`
        SELECT od.menu_item_id,
               mi.name,
               SUM(od.quantity) AS quantity,
               SUM(od.quantity * od.price_at_order) AS revenue
        FROM order_details od
        JOIN orders o ON o.id = od.order_id
        JOIN menu_items mi ON mi.id = od.menu_item_id
        WHERE o.status = 'PAID'
          AND o.paid_at >= ?
        GROUP BY od.menu_item_id, mi.name
        ORDER BY quantity DESC
        LIMIT ?
    `, since, limit).Scan(&topItems).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, topItems)
}
