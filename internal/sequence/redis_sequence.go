package sequence

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/redis/rueidis"
)

// advanceScript raises the counter to ARGV[1] when it is lower, in one
// atomic step.
var advanceScript = rueidis.NewLuaScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local target = tonumber(ARGV[1])
if current < target then
  redis.call('SET', KEYS[1], ARGV[1])
  return 1
end
return 0
`)

type RedisSequence struct {
	client rueidis.Client
	key    string
	seed   SeedFunc
	seeded atomic.Bool
}

func NewRedisSequence(client rueidis.Client, key string, seed SeedFunc) *RedisSequence {
	return &RedisSequence{
		client: client,
		key:    key,
		seed:   seed,
	}
}

func (r *RedisSequence) Next(ctx context.Context) (int64, error) {
	if !r.seeded.Load() {
		if err := r.ensureSeeded(ctx); err != nil {
			return 0, err
		}
	}

	cmd := r.client.B().Incr().Key(r.key).Build()
	return r.client.Do(ctx, cmd).AsInt64()
}

func (r *RedisSequence) AdvanceTo(ctx context.Context, floor int64) error {
	if !r.seeded.Load() {
		if err := r.ensureSeeded(ctx); err != nil {
			return err
		}
	}

	return advanceScript.Exec(ctx, r.client, []string{r.key}, []string{strconv.FormatInt(floor-1, 10)}).Error()
}

// ensureSeeded stores seed-1 under the key unless another writer got there
// first, so the following INCR yields the seed.
func (r *RedisSequence) ensureSeeded(ctx context.Context) error {
	existsCmd := r.client.B().Exists().Key(r.key).Build()
	exists, err := r.client.Do(ctx, existsCmd).AsInt64()
	if err != nil {
		return err
	}

	if exists == 0 {
		first, err := r.seed(ctx)
		if err != nil {
			return err
		}

		setCmd := r.client.B().Set().Key(r.key).Value(strconv.FormatInt(first-1, 10)).Nx().Build()
		if err := r.client.Do(ctx, setCmd).Error(); err != nil && !rueidis.IsRedisNil(err) {
			return err
		}
	}

	r.seeded.Store(true)
	return nil
}
