package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	platformkafka "github.com/Apurer/go-gin-eshop/internal/platform/kafka"
)

var _ ports.Publisher = (*Publisher)(nil)

const (
	// DefaultTopic carries one message per newly created shipment.
	DefaultTopic    = "shipments.new"
	defaultPollWait = 2 * time.Second
	defaultMaxBatch = 100
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// newShipmentMessage is the payload written to the shipments topic.
type newShipmentMessage struct {
	ShippingID  string    `json:"shipping_id"`
	PublishedAt time.Time `json:"published_at"`
}

// Publisher announces shipments on a Kafka topic and polls them back through a consumer group.
// Polled offsets are committed before the batch is processed, so delivery is at-most-once.
type Publisher struct {
	writer   messageWriter
	reader   messageReader
	pollWait time.Duration
	maxBatch int
	now      func() time.Time
}

// Option configures the Kafka publisher.
type Option func(*Publisher)

// WithPollWait bounds how long PollShipping waits for messages.
func WithPollWait(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.pollWait = d
		}
	}
}

// WithMaxBatch caps the number of identifiers a single poll returns.
func WithMaxBatch(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.maxBatch = n
		}
	}
}

// NewPublisher wires a writer and a consumer-group reader on the same topic.
func NewPublisher(client *platformkafka.Client, topic, groupID string, opts ...Option) (*Publisher, error) {
	if !client.Enabled() {
		return nil, errors.New("kafka brokers not configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return newPublisher(client.NewWriter(topic), client.NewReader(topic, groupID), opts...), nil
}

func newPublisher(w messageWriter, r messageReader, opts ...Option) *Publisher {
	p := &Publisher{
		writer:   w,
		reader:   r,
		pollWait: defaultPollWait,
		maxBatch: defaultMaxBatch,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Publisher) SendNewShipping(ctx context.Context, shippingID string) error {
	now := p.now().UTC()
	data, err := json.Marshal(newShipmentMessage{ShippingID: shippingID, PublishedAt: now})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(shippingID), Value: data, Time: now})
}

// PollShipping collects identifiers until the poll window closes or the batch is full.
func (p *Publisher) PollShipping(ctx context.Context) ([]string, error) {
	pollCtx, cancel := context.WithTimeout(ctx, p.pollWait)
	defer cancel()

	var (
		msgs []kafka.Message
		ids  = []string{}
		seen = map[string]struct{}{}
	)
	for len(msgs) < p.maxBatch {
		msg, err := p.reader.FetchMessage(pollCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			return nil, fmt.Errorf("fetch shipment notification: %w", err)
		}
		msgs = append(msgs, msg)
		id := decodeShippingID(msg)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(msgs) > 0 {
		if err := p.reader.CommitMessages(ctx, msgs...); err != nil {
			return nil, fmt.Errorf("commit shipment notifications: %w", err)
		}
	}
	return ids, nil
}

// Close releases the writer and reader.
func (p *Publisher) Close() error {
	return errors.Join(p.writer.Close(), p.reader.Close())
}

func decodeShippingID(msg kafka.Message) string {
	var payload newShipmentMessage
	if err := json.Unmarshal(msg.Value, &payload); err == nil && payload.ShippingID != "" {
		return payload.ShippingID
	}
	return string(msg.Key)
}
