package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Client holds broker addresses and builds readers and writers for a topic.
type Client struct {
	Brokers []string
}

// NewClient parses a comma separated broker list. An empty list disables Kafka.
func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

func (c *Client) Enabled() bool {
	return c != nil && len(c.Brokers) > 0
}

// NewWriter returns a writer keyed by message key so one shipment always lands on one partition.
func (c *Client) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
}

// NewReader returns a consumer-group reader with explicit commits.
func (c *Client) NewReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        c.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})
}
