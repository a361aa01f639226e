//go:build e2e

package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"availability-engine/internal/infra/lock"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const sweepKey = "availability:sweep"

type RedisLockerTestSuite struct {
	suite.Suite
	client *redis.Client
}

func TestRedisLockerSuite(t *testing.T) {
	suite.Run(t, new(RedisLockerTestSuite))
}

func (s *RedisLockerTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
			Labels:       map[string]string{"purpose": "availability-e2e"},
		},
		Started: true,
	})
	s.Require().NoError(err, "Redisコンテナの起動に失敗")
	s.T().Cleanup(func() { _ = c.Terminate(context.Background()) })

	endpoint, err := c.Endpoint(ctx, "")
	s.Require().NoError(err)
	s.client = redis.NewClient(&redis.Options{Addr: endpoint})
	s.T().Cleanup(func() { _ = s.client.Close() })
}

func (s *RedisLockerTestSuite) SetupSubTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
}

func (s *RedisLockerTestSuite) TestTryLock() {
	ctx := context.Background()

	s.Run("error: second holder is refused while the lease is held", func() {
		l := lock.NewRedisLocker(s.client)
		release, ok, err := l.TryLock(ctx, sweepKey, time.Minute)
		s.Require().NoError(err)
		s.Require().True(ok)

		_, ok, err = l.TryLock(ctx, sweepKey, time.Minute)
		s.Require().NoError(err)
		s.False(ok)

		s.Require().NoError(release(ctx))
		_, ok, err = l.TryLock(ctx, sweepKey, time.Minute)
		s.Require().NoError(err)
		s.True(ok, "released lease can be taken again")
	})

	s.Run("success: lease carries the ttl", func() {
		_, ok, err := lock.NewRedisLocker(s.client).TryLock(ctx, sweepKey, time.Minute)
		s.Require().NoError(err)
		s.Require().True(ok)

		ttl, err := s.client.PTTL(ctx, "lock:"+sweepKey).Result()
		s.Require().NoError(err)
		s.Greater(ttl, 50*time.Second)
		s.LessOrEqual(ttl, time.Minute)
	})

	s.Run("success: stale release keeps the newer holder's key", func() {
		first := lock.NewRedisLocker(s.client)
		second := lock.NewRedisLocker(s.client)

		staleRelease, ok, err := first.TryLock(ctx, sweepKey, 200*time.Millisecond)
		s.Require().NoError(err)
		s.Require().True(ok)

		s.Require().Eventually(func() bool {
			return s.client.Exists(ctx, "lock:"+sweepKey).Val() == 0
		}, 5*time.Second, 50*time.Millisecond, "lease should lapse")

		_, ok, err = second.TryLock(ctx, sweepKey, time.Minute)
		s.Require().NoError(err)
		s.Require().True(ok)
		owner := s.client.Get(ctx, "lock:"+sweepKey).Val()

		s.Require().NoError(staleRelease(ctx))
		s.Equal(owner, s.client.Get(ctx, "lock:"+sweepKey).Val())

		_, ok, err = first.TryLock(ctx, sweepKey, time.Minute)
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("success: exactly one replica wins the sweep", func() {
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				client := redis.NewClient(&redis.Options{Addr: s.client.Options().Addr})
				defer client.Close()
				if _, ok, err := lock.NewRedisLocker(client).TryLock(ctx, sweepKey, time.Minute); err == nil && ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		s.Equal(int32(1), wins.Load())
	})
}

var _ suite.SetupSubTest = (*RedisLockerTestSuite)(nil)
