package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	headerEventType = "event-type"

	// DefaultBatchTimeout у kafka.Writer по умолчанию секунда, а Publish синхронный
	DefaultBatchTimeout = 10 * time.Millisecond
)

var (
	ErrPublisherClosed = errors.New("publisher is closed")
	ErrEmptyKey        = errors.New("event key is empty")
)

// messageWriter часть kafka.Writer, которая нужна издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события распределения в Kafka.
// Ключ сообщения ключ события (ID преподавателя), поэтому события одного
// преподавателя попадают в одну партицию и сохраняют порядок.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

var _ allocation.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher создаёт издателя. batchTimeout <= 0 заменяется на DefaultBatchTimeout.
func NewKafkaPublisher(brokers []string, topic string, batchTimeout time.Duration, logger *zap.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Sugar().Errorf(msg, args...)
		}),
	}

	return newKafkaPublisher(writer, topic, logger), nil
}

func newKafkaPublisher(writer messageWriter, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish сериализует событие в JSON и синхронно пишет его в топик
func (p *KafkaPublisher) Publish(ctx context.Context, event allocation.Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	msg, err := encode(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event.Type, err)
	}

	p.logger.Debug("Event published",
		zap.String("topic", p.topic),
		zap.String("type", string(event.Type)),
		zap.String("key", event.Key))
	return nil
}

// Close закрывает writer; повторный вызов ничего не делает
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

func encode(event allocation.Event) (kafka.Message, error) {
	if event.Key == "" {
		return kafka.Message{}, ErrEmptyKey
	}

	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	return kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Type)},
		},
	}, nil
}
