package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

type EventType string

const (
	EventTypeOrderCreated EventType = "purchase_order.created"
	EventTypeOrderDeleted EventType = "purchase_order.deleted"
)

// DefaultTopic — топик событий заказов по умолчанию.
const DefaultTopic = "purchasing.purchase_order.events"

// OrderEvent — сообщение о заказе. Для удаления заполнен только OrderID.
type OrderEvent struct {
	EventType  EventType `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id,omitempty"`
	Items      int       `json:"items,omitempty"`
	TotalPrice int64     `json:"total_price,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// OrderEvents реализует purchaseorder.EventPublisher поверх Producer.
// Ключ сообщения равен идентификатору заказа, события одного заказа попадают в одну партицию.
type OrderEvents struct {
	producer publisher
	topic    string
	now      func() time.Time
}

// NewOrderEvents создаёт публикатор; пустой topic заменяется DefaultTopic.
func NewOrderEvents(producer *Producer, topic string) *OrderEvents {
	return newOrderEvents(producer, topic, producer.clock.Now)
}

func newOrderEvents(p publisher, topic string, now func() time.Time) *OrderEvents {
	if topic == "" {
		topic = DefaultTopic
	}
	return &OrderEvents{producer: p, topic: topic, now: now}
}

// OrderCreated публикует purchase_order.created.
func (e *OrderEvents) OrderCreated(ctx context.Context, order purchaseorder.Order) error {
	return e.producer.Publish(ctx, e.topic, strconv.FormatInt(order.ID, 10), OrderEvent{
		EventType:  EventTypeOrderCreated,
		OrderID:    order.ID,
		CustomerID: order.Customer.ID,
		Items:      len(order.Items),
		TotalPrice: order.TotalPrice(),
		Timestamp:  e.now(),
	})
}

// OrderDeleted публикует purchase_order.deleted.
func (e *OrderEvents) OrderDeleted(ctx context.Context, id int64) error {
	return e.producer.Publish(ctx, e.topic, strconv.FormatInt(id, 10), OrderEvent{
		EventType: EventTypeOrderDeleted,
		OrderID:   id,
		Timestamp: e.now(),
	})
}

var _ purchaseorder.EventPublisher = (*OrderEvents)(nil)
