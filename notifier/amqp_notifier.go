package notifier

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const notificationExchange = "booking_notifications"

// AMQPNotifier publishes booking events to a fanout exchange consumed
// by the email/SMS collaborator and the reminder scheduler.
type AMQPNotifier struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	url    string
	logger *logrus.Logger
}

func NewAMQPNotifier(url string, logger *logrus.Logger) (*AMQPNotifier, error) {
	n := &AMQPNotifier{url: url, logger: logger}
	if err := n.connect(); err != nil {
		return nil, err
	}

	go n.handleReconnect(5 * time.Second)

	return n, nil
}

func (n *AMQPNotifier) connect() error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	if err := ch.ExchangeDeclare(
		notificationExchange, // exchange name
		"fanout",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // args
	); err != nil {
		conn.Close()
		return err
	}

	n.conn = conn
	n.ch = ch
	n.logger.Info("Connected to RabbitMQ (notifications)")
	return nil
}

func (n *AMQPNotifier) handleReconnect(backoff time.Duration) {
	errs := make(chan *amqp.Error)
	n.conn.NotifyClose(errs)
	for e := range errs {
		n.logger.Printf("RabbitMQ connection closed: %v. Reconnecting...", e)
		for {
			time.Sleep(backoff)
			if err := n.connect(); err != nil {
				n.logger.Printf("Reconnect failed: %v", err)
				continue
			}
			errs = make(chan *amqp.Error)
			n.conn.NotifyClose(errs)
			break
		}
	}
}

func (n *AMQPNotifier) Notify(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return n.ch.PublishWithContext(ctx,
		notificationExchange, // exchange
		"",                   // routing key (ignored for fanout)
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
