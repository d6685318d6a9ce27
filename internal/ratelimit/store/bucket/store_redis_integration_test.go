//go:build integration

package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"nurture/pkg/requestcontext"
	"nurture/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisBucketStore
	base  time.Time
}

func TestRedisBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedisBucketStore(s.redis.Client)
	s.base = time.Now().Truncate(time.Second)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketStoreSuite) at(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), s.base.Add(offset))
}

func (s *RedisBucketStoreSuite) TestAllowUpToLimit() {
	for i := range testLimit {
		res, err := s.store.Allow(s.at(time.Duration(i)*time.Second), "ratelimit:chat:ip:10.0.0.1", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(testLimit-i-1, res.Remaining)
	}

	res, err := s.store.Allow(s.at(30*time.Second), "ratelimit:chat:ip:10.0.0.1", testLimit, testWindow)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(0, res.Remaining)
	s.Equal(s.base.Add(testWindow).UnixMilli(), res.ResetAt.UnixMilli())
	s.Equal(30, res.RetryAfter)

	count, err := s.store.GetCurrentCount(context.Background(), "ratelimit:chat:ip:10.0.0.1")
	s.Require().NoError(err)
	s.Equal(testLimit, count)
}

func (s *RedisBucketStoreSuite) TestWindowSlides() {
	for range testLimit {
		_, err := s.store.Allow(s.at(0), "k", testLimit, testWindow)
		s.Require().NoError(err)
	}

	res, err := s.store.Allow(s.at(testWindow+time.Second), "k", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(res.Allowed)
}

func (s *RedisBucketStoreSuite) TestReset() {
	_, err := s.store.Allow(s.at(0), "k", testLimit, testWindow)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset(context.Background(), "k"))

	count, err := s.store.GetCurrentCount(context.Background(), "k")
	s.Require().NoError(err)
	s.Zero(count)
}
