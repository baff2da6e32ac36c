package handler

import (
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"strconv"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// OrderWebsocket là kết nối realtime của khách, theo dõi một đơn hàng.
// Client join topic order:<id> và nhận snapshot đầy đủ ngay khi connect.
func OrderWebsocket(c *websocket.Conn) {
	orderIdStr := c.Params("orderId")
	id64, err := strconv.ParseUint(orderIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid orderId: %s", orderIdStr)
		c.Close()
		return
	}
	orderId := uint(id64)
	topic := OrderTopic(orderId)

	EventHub.Subscribe(topic, c)
	defer func() {
		EventHub.Unsubscribe(topic, c)
		c.Close()
	}()

	// Gửi trạng thái hiện tại cho client mới connect
	if order, err := GetHydratedOrder(orderId); err == nil {
		c.WriteJSON(map[string]interface{}{"event": "order_updated", "order": order})
	}

	// Loop giữ connection, client không cần gửi gì
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// AdminWebsocket là dashboard của staff, nhận mọi thay đổi đơn hàng
func AdminWebsocket(c *websocket.Conn) {
	EventHub.Subscribe(AdminTopic, c)
	defer func() {
		EventHub.Unsubscribe(AdminTopic, c)
		c.Close()
	}()

	// Snapshot ban đầu: các đơn chưa kết thúc trong ngày
	var orders []model.Order
	today := time.Now().Truncate(24 * time.Hour)
	if err := database.DB.
		Preload("Table").
		Preload("Details").
		Preload("Details.MenuItem").
		Where("created_at >= ? OR status IN ?", today, []string{constants.ORDER_PENDING, constants.ORDER_COOKING, constants.ORDER_SERVED}).
		Order("created_at desc").
		Find(&orders).Error; err == nil {
		c.WriteJSON(map[string]interface{}{"event": "orders_snapshot", "orders": orders})
	}

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
