package handler

import (
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Phiên của khách sống tối đa chừng này sau khi đơn kết thúc
const sessionLifetime = 2 * time.Hour

var topicSweeper gocron.Scheduler

// SweepClosedTopics đóng topic của các đơn đã ở trạng thái cuối quá lâu,
// kết nối còn treo trên đó bị ngắt để không giữ tài nguyên vô hạn
func SweepClosedTopics() {
	cutoff := time.Now().Add(-sessionLifetime)
	terminal := []string{constants.ORDER_PAID, constants.ORDER_CANCELLED, constants.ORDER_DENIED}

	for _, topic := range EventHub.Topics() {
		if !strings.HasPrefix(topic, "order:") {
			continue
		}
		id64, err := strconv.ParseUint(strings.TrimPrefix(topic, "order:"), 10, 64)
		if err != nil {
			continue
		}

		var order model.Order
		if err := database.DB.First(&order, uint(id64)).Error; err != nil {
			continue
		}

		for _, status := range terminal {
			if order.Status == status && order.UpdatedAt.Before(cutoff) {
				log.Printf("Đóng topic %s: đơn đã kết thúc từ %v", topic, order.UpdatedAt)
				EventHub.CloseTopic(topic)
				break
			}
		}
	}
}

func StartTopicSweeper() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Printf("Lỗi khởi tạo sweeper: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(SweepClosedTopics),
	)
	if err != nil {
		log.Printf("Lỗi đăng ký job sweeper: %v", err)
		return
	}

	s.Start()
	topicSweeper = s
	log.Println("Topic sweeper đã khởi động (mỗi giờ)")
}

func StopTopicSweeper() {
	if topicSweeper != nil {
		topicSweeper.Shutdown()
	}
}
