// Package kafka forwards audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	audit "talentnet/pkg/platform/audit"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	defaultClientID       = "talentnet-visibility"
	defaultProduceTimeout = 5 * time.Second
)

// Sink produces audit events as JSON records keyed by user ID so events for
// one profile stay ordered within a partition.
type Sink struct {
	client  *kgo.Client
	topic   string
	timeout time.Duration
}

type Option func(*sinkConfig)

type sinkConfig struct {
	clientID string
	timeout  time.Duration
	extra    []kgo.Opt
}

func WithClientID(clientID string) Option {
	return func(c *sinkConfig) {
		if clientID != "" {
			c.clientID = clientID
		}
	}
}

func WithProduceTimeout(d time.Duration) Option {
	return func(c *sinkConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClientOpts appends raw franz-go options.
func WithClientOpts(opts ...kgo.Opt) Option {
	return func(c *sinkConfig) {
		c.extra = append(c.extra, opts...)
	}
}

func NewSink(brokers []string, topic string, opts ...Option) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	cfg := sinkConfig{clientID: defaultClientID, timeout: defaultProduceTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	kopts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(cfg.clientID),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProducerLinger(10 * time.Millisecond),
	}
	kopts = append(kopts, cfg.extra...)

	client, err := kgo.NewClient(kopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic, timeout: cfg.timeout}, nil
}

// EnsureTopic creates the audit topic when it does not exist yet.
func (s *Sink) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(s.client)
	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, s.topic)
	if err != nil {
		return fmt.Errorf("failed to create topic %s: %w", s.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("failed to create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Append implements audit.Store.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.UserID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}
	if event.RequestID != "" {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: "request_id", Value: []byte(event.RequestID)})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce audit event: %w", err)
	}
	return nil
}

// Ping checks broker connectivity.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx); err != nil {
		return fmt.Errorf("kafka health check failed: %w", err)
	}
	return nil
}

func (s *Sink) Close() {
	s.client.Close()
}
