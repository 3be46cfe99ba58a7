package consumer

import (
	"encoding/json"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// Channel is the slice of *amqp.Channel a worker needs.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker consumes kitchen tickets from the order queue with manual acks.
type Worker struct {
	id      int
	channel Channel
	queue   string
	tracker *PrepTracker
	log     *logrus.Logger
}

func NewWorker(id int, channel Channel, queue string, tracker *PrepTracker, log *logrus.Logger) *Worker {
	return &Worker{
		id:      id,
		channel: channel,
		queue:   queue,
		tracker: tracker,
		log:     log,
	}
}

// Start consumes messages until the channel closes. Call in a goroutine.
func (w *Worker) Start(wg *sync.WaitGroup) {
	defer wg.Done()

	// One unacked message per worker, so tickets spread across the pool.
	if err := w.channel.Qos(1, 0, false); err != nil {
		w.log.WithError(err).WithField("worker", w.id).Error("failed to set channel QoS")
		return
	}

	msgs, err := w.channel.Consume(
		w.queue,
		"",    // consumer tag
		false, // auto-ack off, we ack after processing
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		w.log.WithError(err).WithField("worker", w.id).Error("failed to register consumer")
		return
	}

	w.log.WithField("worker", w.id).Info("kitchen worker started")

	for msg := range msgs {
		w.handle(msg)
	}

	w.log.WithField("worker", w.id).Info("kitchen worker stopped")
}

func (w *Worker) handle(msg amqp.Delivery) {
	var order models.Order
	if err := json.Unmarshal(msg.Body, &order); err != nil {
		w.log.WithError(err).WithField("worker", w.id).Warn("discarding malformed kitchen ticket")
		// malformed payloads will never parse, do not requeue
		if nackErr := msg.Nack(false, false); nackErr != nil {
			w.log.WithError(nackErr).Warn("failed to nack message")
		}
		return
	}

	w.tracker.RecordOrder(order.ID, order.Items)

	w.log.WithFields(logrus.Fields{
		"worker":   w.id,
		"order_id": order.ID,
		"items":    len(order.Items),
		"total":    order.TotalPrice,
	}).Info("kitchen ticket processed")

	if err := msg.Ack(false); err != nil {
		w.log.WithError(err).WithField("order_id", order.ID).Error("failed to ack message")
	}
}
