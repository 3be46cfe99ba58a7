package rabbitmq

import (
	"sync"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ChannelPool hands out pre-created AMQP channels so each publish does
// not pay for channel setup.
type ChannelPool struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	mu        sync.Mutex
	size      int
	queueName string
	log       *logrus.Logger
}

func NewChannelPool(rabbitmqURL, queueName string, size int, log *logrus.Logger) (*ChannelPool, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to RabbitMQ")
	}

	pool := &ChannelPool{
		conn:      conn,
		channels:  make(chan *amqp.Channel, size),
		size:      size,
		queueName: queueName,
		log:       log,
	}

	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, errors.Wrapf(err, "create channel %d", i)
		}
		pool.channels <- ch
	}

	log.Infof("created RabbitMQ channel pool with %d channels", size)
	return pool, nil
}

// createChannel opens a channel and declares the queue (idempotent).
func (p *ChannelPool) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		ch.Close()
		return nil, errors.Wrap(err, "declare queue")
	}

	return ch, nil
}

// GetChannel retrieves a channel from the pool, replacing it if the
// broker closed it in the meantime.
func (p *ChannelPool) GetChannel() (*amqp.Channel, error) {
	select {
	case ch := <-p.channels:
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	default:
		return nil, errors.New("no channels available in pool")
	}
}

// ReturnChannel puts a channel back; a full pool closes the extra one.
func (p *ChannelPool) ReturnChannel(ch *amqp.Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}
	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	p.log.Info("closed RabbitMQ channel pool")
}
