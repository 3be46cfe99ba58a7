package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// Publisher announces placed orders on the kitchen queue.
type Publisher struct {
	pool      *ChannelPool
	queueName string
	log       *logrus.Logger
}

func NewPublisher(pool *ChannelPool, queueName string, log *logrus.Logger) *Publisher {
	return &Publisher{pool: pool, queueName: queueName, log: log}
}

// AnnounceOrder publishes the order as a persistent JSON message.
func (p *Publisher) AnnounceOrder(order models.Order) error {
	ch, err := p.pool.GetChannel()
	if err != nil {
		return errors.Wrap(err, "get channel from pool")
	}
	defer p.pool.ReturnChannel(ch)

	body, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "marshal order")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return errors.Wrap(err, "publish order")
	}

	p.log.WithField("order_id", order.ID).Info("announced order on kitchen queue")
	return nil
}
