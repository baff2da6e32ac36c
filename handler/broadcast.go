package handler

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/redis/go-redis/v9"
)

const orderEventChannel = "order_events"

var redisClient *redis.Client

// orderEvent là thông điệp đẩy qua Redis giữa các instance
type orderEvent struct {
	Topics  []string        `json:"topics"`
	Payload json.RawMessage `json:"payload"`
}

// GetHydratedOrder nạp đơn hàng đầy đủ: bàn, nhân viên, món kèm menu item.
// Subscriber luôn nhận snapshot nhất quán, không bao giờ nhận bản ghi thiếu.
func GetHydratedOrder(orderId uint) (*model.Order, error) {
	var order model.Order
	if err := database.DB.
		Preload("Table").
		Preload("Staff").
		Preload("Details").
		Preload("Details.MenuItem").
		First(&order, orderId).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// PublishOrderUpdate phát đơn hàng đã hydrate tới topic của đơn và topic admin.
// Chỉ gọi SAU khi transaction đã commit.
func PublishOrderUpdate(order *model.Order) {
	payload := map[string]interface{}{
		"event": "order_updated",
		"order": order,
	}
	topics := []string{OrderTopic(order.ID), AdminTopic}

	if redisClient != nil {
		// Có Redis: phát qua channel, bridge của từng instance tự đưa về hub local
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Lỗi marshal order event: %v", err)
			return
		}
		msg, _ := json.Marshal(orderEvent{Topics: topics, Payload: raw})
		if err := redisClient.Publish(context.Background(), orderEventChannel, msg).Err(); err != nil {
			log.Printf("Lỗi publish Redis, fallback phát local: %v", err)
			for _, topic := range topics {
				EventHub.Publish(topic, payload)
			}
		}
		return
	}

	for _, topic := range topics {
		EventHub.Publish(topic, payload)
	}
}

// StartRedisBridge bật cầu nối Redis pub/sub khi chạy nhiều instance.
// Không cấu hình REDIS_ADDR thì hub chạy standalone.
func StartRedisBridge() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR trống, fanout chạy trong process")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: addr})
	pubsub := redisClient.Subscribe(context.Background(), orderEventChannel)

	go func() {
		channel := pubsub.Channel()
		for msg := range channel {
			var event orderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Lỗi parse order event từ Redis: %v", err)
				continue
			}
			var payload map[string]interface{}
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				continue
			}
			for _, topic := range event.Topics {
				EventHub.Publish(topic, payload)
			}
		}
	}()
	log.Println("Redis bridge cho fanout đã khởi động:", addr)
}
