//go:build integration

package producer_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"fairgate/internal/platform/kafka"
	"fairgate/internal/platform/kafka/producer"
	"fairgate/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	producer *producer.Producer
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redpanda = mgr.GetRedpanda(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := kafka.DefaultProducerConfig()
	cfg.Brokers = s.redpanda.Brokers
	p, err := producer.New(cfg, logger)
	s.Require().NoError(err)
	s.producer = p
}

func (s *ProducerSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
}

func (s *ProducerSuite) TestProduceAndConsume() {
	ctx := context.Background()
	topic := "fairgate.test.decisions"

	err := s.producer.Produce(ctx, &producer.Message{
		Topic: topic,
		Key:   []byte("CASE-K1"),
		Value: []byte(`{"decision":"ALLOWED"}`),
		Headers: map[string]string{
			"engine_version": "1.0.0",
		},
	})
	s.Require().NoError(err)

	consumer, err := s.redpanda.NewConsumer(topic)
	s.Require().NoError(err)
	defer consumer.Close()

	record := s.redpanda.WaitForRecord(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "CASE-K1"
	})
	s.Require().NotNil(record, "expected produced record to be consumable")
	s.Equal(`{"decision":"ALLOWED"}`, string(record.Value))
}

func (s *ProducerSuite) TestHealthy() {
	s.True(s.producer.Healthy(context.Background()))
}
