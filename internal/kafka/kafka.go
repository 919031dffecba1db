// Package kafka отправляет события о взаимодействиях с постами в Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/levalimpiev/post-interactions/internal/config"
	"github.com/levalimpiev/post-interactions/internal/metrics"
	"github.com/levalimpiev/post-interactions/internal/models"
)

// messageWriter - часть *kafka.Writer, которую использует Producer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события в топики по типу события
type Producer struct {
	enabled bool
	writer  messageWriter
	topics  map[models.EventType]string
	timeout time.Duration
	logger  *zap.Logger
}

// NewProducer создает Producer. Если Kafka отключена, события только логируются.
func NewProducer(cfg config.KafkaConfig, logger *zap.Logger) *Producer {
	if !cfg.Enabled {
		logger.Info("Kafka отключена, события не будут отправляться")
		return newProducer(cfg, nil, logger)
	}

	logger.Info("Инициализация Kafka Producer", zap.Strings("brokers", cfg.Brokers))

	writer := &kafka.Writer{
		Addr: kafka.TCP(cfg.Brokers...),
		// Ключ сообщения - ID поста, поэтому события одного поста попадают в одну партицию
		Balancer:               &kafka.Hash{},
		MaxAttempts:            cfg.MaxAttempts,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newProducer(cfg, writer, logger)
}

func newProducer(cfg config.KafkaConfig, writer messageWriter, logger *zap.Logger) *Producer {
	return &Producer{
		enabled: writer != nil,
		writer:  writer,
		topics: map[models.EventType]string{
			models.EventPostViewed:    cfg.TopicViews,
			models.EventPostLiked:     cfg.TopicLikes,
			models.EventPostCommented: cfg.TopicComments,
		},
		timeout: cfg.PublishTimeout,
		logger:  logger,
	}
}

// Publish сериализует событие в JSON и отправляет его в топик, соответствующий типу
func (p *Producer) Publish(ctx context.Context, event models.Event) error {
	topic, ok := p.topics[event.Type]
	if !ok {
		return fmt.Errorf("неизвестный тип события %q", event.Type)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сообщения: %w", err)
	}

	if !p.enabled {
		// Симуляция отправки сообщения для тестирования
		p.logger.Info("Симуляция отправки события",
			zap.String("topic", topic),
			zap.ByteString("payload", data),
		)
		metrics.EventsPublished.WithLabelValues(string(event.Type), metrics.ResultSimulated).Inc()
		return nil
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.Itoa(int(event.PostID))),
		Value: data,
		Time:  event.OccurredAt,
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues(string(event.Type), metrics.ResultError).Inc()
		return fmt.Errorf("ошибка отправки сообщения в Kafka: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(string(event.Type), metrics.ResultOK).Inc()
	p.logger.Debug("Событие отправлено",
		zap.String("topic", topic),
		zap.Int32("post_id", event.PostID),
	)
	return nil
}

// Close закрывает соединение с брокерами
func (p *Producer) Close() error {
	p.logger.Info("Закрытие Kafka Producer")
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
