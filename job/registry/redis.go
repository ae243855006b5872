package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// DefaultKeyPrefix namespaces every key the Redis registry writes.
const DefaultKeyPrefix = "longrun"

// registerScript adds the id to the live set and stores the document in one
// step. It returns 0 when the id is already live.
var registerScript = redis.NewScript(`
if redis.call('SADD', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2])
return 1
`)

// Redis stores each job's byte form under {prefix}:job:{id} and tracks live
// ids in the {prefix}:jobs:live set.
type Redis struct {
	client     *redis.Client
	prefix     string
	serializer *job.Serializer
	breaker    *gobreaker.CircuitBreaker
}

// NewRedis returns a registry backed by client. Documents read back are
// rehydrated with s.
func NewRedis(client *redis.Client, prefix string, s *job.Serializer) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if s == nil {
		s = &job.Serializer{}
	}
	return &Redis{
		client:     client,
		prefix:     prefix,
		serializer: s,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        prefix + ":registry",
			MaxRequests: 5,
			Interval:    10 * time.Second,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, job.ErrJobNotFound) || errors.Is(err, job.ErrAlreadyRegistered)
			},
		}),
	}
}

func (r *Redis) liveKey() string { return r.prefix + ":jobs:live" }

func (r *Redis) docKey(id uuid.UUID) string { return r.prefix + ":job:" + id.String() }

func (r *Redis) Register(ctx context.Context, j *job.TimedJob) error {
	if j == nil {
		return job.ErrNilJob
	}
	data, _, err := job.Marshal(j)
	if err != nil {
		return err
	}
	_, err = r.breaker.Execute(func() (any, error) {
		added, err := registerScript.Run(ctx, r.client, []string{r.liveKey(), r.docKey(j.ID)}, j.ID.String(), data).Int()
		if err != nil {
			return nil, fmt.Errorf("failed to register job %s: %w", j.ID, err)
		}
		if added == 0 {
			return nil, job.ErrAlreadyRegistered
		}
		return nil, nil
	})
	return err
}

func (r *Redis) Lookup(ctx context.Context, id uuid.UUID) (*job.TimedJob, error) {
	v, err := r.breaker.Execute(func() (any, error) {
		live, err := r.client.SIsMember(ctx, r.liveKey(), id.String()).Result()
		if err != nil {
			return nil, err
		}
		if !live {
			return nil, job.ErrJobNotFound
		}
		return r.get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return r.serializer.Unmarshal(ctx, v.([]byte), r)
}

func (r *Redis) Remove(ctx context.Context, id uuid.UUID, release bool) error {
	_, err := r.breaker.Execute(func() (any, error) {
		pipe := r.client.TxPipeline()
		pipe.SRem(ctx, r.liveKey(), id.String())
		if release {
			pipe.Del(ctx, r.docKey(id))
		}
		_, err := pipe.Exec(ctx)
		return nil, err
	})
	return err
}

// LoadDocument reads the stored document regardless of whether the job is
// still live.
func (r *Redis) LoadDocument(ctx context.Context, id uuid.UUID) (*job.TimedJob, error) {
	v, err := r.breaker.Execute(func() (any, error) {
		return r.get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return r.serializer.Unmarshal(ctx, v.([]byte), nil)
}

// LiveCount returns the number of live job ids.
func (r *Redis) LiveCount(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, r.liveKey()).Result()
}

func (r *Redis) get(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := r.client.Get(ctx, r.docKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, job.ErrJobNotFound
	}
	return data, err
}
