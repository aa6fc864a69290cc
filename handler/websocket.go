package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"restaurant_pos/config"
	"restaurant_pos/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

func redisConn() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

type orderStatusEvent struct {
	OrderCode string       `json:"orderCode"`
	Status    model.Status `json:"status"`
	Total     float64      `json:"total"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// PublishOrderStatus pushes a status change to every tracker of the order
func PublishOrderStatus(o *model.Order) {
	event := orderStatusEvent{
		OrderCode: o.PublicCode,
		Status:    o.Status,
		Total:     o.Total,
		UpdatedAt: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	channel := fmt.Sprintf("order:%d", o.ID)
	if err := redisConn().Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("status publish failed for %s: %v", o.PublicCode, err)
	}
}

// pumpOrderEvents forwards pubsub payloads to one subscriber until the
// message channel closes, the subscriber goes away, or a write fails
func pumpOrderEvents(ch <-chan *redis.Message, done <-chan struct{}, write func([]byte) error) {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := write([]byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// OrderStatusWS streams live status updates for one order. Each connection
// holds its own redis subscription; fanout across trackers happens in redis,
// not here.
func OrderStatusWS(c *websocket.Conn) {
	defer c.Close()

	order, err := findOrderByCode(c.Params("code"))
	if err != nil {
		c.WriteJSON(map[string]string{"error": "order not found"})
		return
	}

	pubsub := redisConn().Subscribe(
		context.Background(),
		fmt.Sprintf("order:%d", order.ID),
	)
	defer pubsub.Close()

	// current state first
	c.WriteJSON(orderStatusEvent{
		OrderCode: order.PublicCode,
		Status:    order.Status,
		Total:     order.Total,
		UpdatedAt: order.UpdatedAt,
	})

	// drain reads so a client disconnect ends the stream; inbound payloads
	// are discarded
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pumpOrderEvents(pubsub.Channel(), done, func(payload []byte) error {
		return c.WriteMessage(websocket.TextMessage, payload)
	})
}
