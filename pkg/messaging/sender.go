package messaging

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventTopic names one published event stream.
type EventTopic string

const (
	SearchTopic       EventTopic = "search"
	FilterChangeTopic EventTopic = "filter_change"
	SessionTopic      EventTopic = "session"
)

// DefineTopic declares the durable exchange and queue pair for a topic.
func DefineTopic(ch *amqp.Channel, prefix string, topic EventTopic) error {
	name := topicName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return err
	}
	return nil
}

func topicName(prefix string, topic EventTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

// SendEvent publishes one JSON-encoded event on a fresh channel.
func SendEvent[V any](c *amqp.Connection, prefix string, topic EventTopic, data V) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := topicName(prefix, topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
