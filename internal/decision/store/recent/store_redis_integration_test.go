//go:build integration

package recent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fairgate/internal/decision"
	"fairgate/internal/decision/store/recent"
	"fairgate/internal/domain"
	"fairgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *recent.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = recent.NewRedis(s.redis.Client, 5*time.Minute)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func testRecord(caseID, action string) *decision.Record {
	return &decision.Record{
		CaseID:         caseID,
		ProposedAction: action,
		Decision:       domain.DecisionAllowed,
		Confidence:     0.92,
	}
}

func (s *RedisStoreSuite) TestPutAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, testRecord("CASE-R1", "send_email")))

	got, err := s.store.Get(ctx, "CASE-R1", "send_email")
	s.Require().NoError(err)
	s.Equal("CASE-R1", got.CaseID)
	s.Equal(domain.DecisionAllowed, got.Decision)
	s.Equal(0.92, got.Confidence)
}

func (s *RedisStoreSuite) TestMissReturnsErrNotFound() {
	_, err := s.store.Get(context.Background(), "CASE-MISSING", "send_email")
	s.ErrorIs(err, recent.ErrNotFound)
}

func (s *RedisStoreSuite) TestKeyedByCaseAndAction() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, testRecord("CASE-R2", "send_email")))

	_, err := s.store.Get(ctx, "CASE-R2", "send_sms")
	s.ErrorIs(err, recent.ErrNotFound)
}

func (s *RedisStoreSuite) TestTTLExpiry() {
	ctx := context.Background()
	short := recent.NewRedis(s.redis.Client, time.Second)

	s.Require().NoError(short.Put(ctx, testRecord("CASE-R3", "send_email")))

	_, err := short.Get(ctx, "CASE-R3", "send_email")
	s.Require().NoError(err)

	time.Sleep(1500 * time.Millisecond)

	_, err = short.Get(ctx, "CASE-R3", "send_email")
	s.ErrorIs(err, recent.ErrNotFound)
}

func (s *RedisStoreSuite) TestPutOverwrites() {
	ctx := context.Background()

	first := testRecord("CASE-R4", "send_email")
	s.Require().NoError(s.store.Put(ctx, first))

	second := testRecord("CASE-R4", "send_email")
	second.Decision = domain.DecisionReviewRequired
	second.Confidence = 0.85
	s.Require().NoError(s.store.Put(ctx, second))

	got, err := s.store.Get(ctx, "CASE-R4", "send_email")
	s.Require().NoError(err)
	s.Equal(domain.DecisionReviewRequired, got.Decision)
}
