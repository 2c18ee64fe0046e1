//go:build integration

package sequence

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) rueidis.Client {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(300)

	addr := fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))

	var client rueidis.Client
	pool.MaxWait = time.Minute
	require.NoError(t, pool.Retry(func() error {
		c, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}, DisableCache: true})
		if err != nil {
			return err
		}
		if err := c.Do(context.Background(), c.B().Ping().Build()).Error(); err != nil {
			c.Close()
			return err
		}
		client = c
		return nil
	}))
	t.Cleanup(client.Close)

	return client
}

func TestRedisSequence_ConcurrentWritersNeverCollide(t *testing.T) {
	client := startRedis(t)
	seed := func(ctx context.Context) (int64, error) { return 20000, nil }

	const writers, perWriter = 4, 25
	var (
		mu  sync.Mutex
		got []int64
		wg  sync.WaitGroup
	)

	for w := 0; w < writers; w++ {
		// Separate instances model separate server processes.
		seq := NewRedisSequence(client, "test:employee_id", seed)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				n, err := seq.Next(context.Background())
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				got = append(got, n)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, got, writers*perWriter)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i, n := range got {
		assert.Equal(t, int64(20000+i), n)
	}
}

func TestRedisSequence_KeepsExistingCounter(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Do(ctx, client.B().Set().Key("test:seq").Value("30010").Build()).Error())

	seq := NewRedisSequence(client, "test:seq", func(ctx context.Context) (int64, error) {
		return 20000, nil
	})
	n, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30011), n)
}

func TestRedisSequence_AdvanceTo(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	seq := NewRedisSequence(client, "test:advance", func(ctx context.Context) (int64, error) {
		return 20000, nil
	})

	n, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), n)

	require.NoError(t, seq.AdvanceTo(ctx, 20050))
	n, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20050), n)

	require.NoError(t, seq.AdvanceTo(ctx, 20001))
	n, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20051), n)
}
