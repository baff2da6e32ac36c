package handler

import (
	"fmt"
	"sync"
)

// Topic của khách theo đơn hàng; staff dashboard dùng chung topic admin
const AdminTopic = "admin"

func OrderTopic(orderId uint) string {
	return fmt.Sprintf("order:%d", orderId)
}

// WSConn là phần giao tiếp tối thiểu của một kết nối realtime,
// websocket.Conn thỏa mãn sẵn, test dùng fake
type WSConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub giữ map topic -> tập kết nối đang sống
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[WSConn]bool
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[WSConn]bool)}
}

// EventHub là hub duy nhất của process
var EventHub = NewHub()

// Subscribe thêm kết nối vào topic, gọi lặp lại vô hại
func (h *Hub) Subscribe(topic string, conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[WSConn]bool)
	}
	h.topics[topic][conn] = true
}

// Unsubscribe gỡ kết nối khỏi topic, gọi lặp lại vô hại
func (h *Hub) Unsubscribe(topic string, conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] != nil {
		delete(h.topics[topic], conn)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Publish gửi payload tới mọi kết nối trong topic.
// Kết nối lỗi bị đóng và gỡ luôn khỏi topic.
func (h *Hub) Publish(topic string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.topics[topic] {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(h.topics[topic], conn)
		}
	}
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
}

// CloseTopic đóng mọi kết nối của topic và xóa topic
func (h *Hub) CloseTopic(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.topics[topic] {
		conn.Close()
	}
	delete(h.topics, topic)
}

// Topics liệt kê các topic đang có kết nối (cho job dọn dẹp)
func (h *Hub) Topics() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]string, 0, len(h.topics))
	for topic := range h.topics {
		result = append(result, topic)
	}
	return result
}

// Count đếm kết nối trong topic
func (h *Hub) Count(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
