package kafkax

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
)

// Producer publishes catalog change events to a single topic.
// The writer runs in async mode: Emit only hands the message off, and
// delivery errors land in the completion hook as log lines.
type Producer struct {
	w       *kafka.Writer
	logger  *log.Logger
	brokers []string
}

type Config struct {
	Brokers []string
	Topic   string
}

func New(cfg Config, logger *log.Logger) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: 5 * time.Second,
	}
	w.Completion = func(messages []kafka.Message, err error) {
		if err != nil {
			logger.Printf("delivery failed (%d messages): %v", len(messages), err)
		}
	}
	return &Producer{w: w, logger: logger, brokers: cfg.Brokers}
}

// Ping dials the first broker so readiness can report a dead cluster.
func (p *Producer) Ping(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		p.logger.Printf("PING failed: %v", err)
		return err
	}
	defer conn.Close()
	p.logger.Println("PING ok")
	return nil
}

func (p *Producer) Close() {
	if err := p.w.Close(); err != nil {
		p.logger.Printf("error while closing: %v", err)
		return
	}
	p.logger.Println("closed")
}

func (p *Producer) Emit(ctx context.Context, event string, payload any) error {
	env := domain.EventEnvelope{
		Event:     event,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(env)
	if err != nil {
		p.logger.Printf("EMIT %q marshal failed: %v", event, err)
		return err
	}

	// Async writer: this enqueues and returns immediately.
	if err := p.w.WriteMessages(ctx, kafka.Message{Value: b}); err != nil {
		p.logger.Printf("EMIT %q enqueue failed: %v", event, err)
		return err
	}
	p.logger.Printf("EMIT %q -> topic=%q (%d bytes)", event, p.w.Topic, len(b))
	return nil
}
