package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

var (
	ErrEncode  = errors.New("eventbus: failed to encode event")
	ErrPublish = errors.New("eventbus: failed to publish event")
)

// Writer часть *kafka.Writer, которой пользуется издатель
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события по записям в Kafka.
// Ключ сообщения - ID записи, чтобы события одной записи шли в одну партицию
type Publisher struct {
	writer Writer
	topic  string
}

// NewPublisher создает издателя поверх kafka.Writer для списка брокеров "host:port,host:port"
func NewPublisher(brokers, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(SplitBrokers(brokers)...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(writer, topic)
}

// NewPublisherWithWriter создает издателя поверх произвольного writer
func NewPublisherWithWriter(writer Writer, topic string) *Publisher {
	return &Publisher{writer: writer, topic: topic}
}

// Name имя получателя событий для логов и метрик
func (p *Publisher) Name() string {
	return "kafka"
}

// Send публикует событие
func (p *Publisher) Send(ctx context.Context, event domain.AppointmentEvent) error {
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s: %v", ErrPublish, p.topic, err)
	}
	return nil
}

// Close закрывает соединения с брокерами
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func buildMessage(event domain.AppointmentEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
