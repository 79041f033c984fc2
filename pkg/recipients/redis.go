package recipients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config describes the Redis connection backing the recipient store.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect establishes a Redis connection with retry, verifying it with a
// ping before handing it back. All attempts share one deadline derived from
// ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		default:
			time.Sleep(cfg.RetryInterval)
		}
	}
	return nil, ErrRedisNotReady
}

// RedisCmdable is the slice of the go-redis client used by RedisSource.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// RedisSource reads recipient configuration from the key-value store the
// admin UI writes to:
//
//	recipients:targets             - set of "compact/jurisdiction" members
//	recipients:{compact}           - JSON array of compact-level addresses
//	recipients:{compact}:{jur}     - JSON array of jurisdiction operations addresses
type RedisSource struct {
	client RedisCmdable
}

// NewRedisSource creates a recipient source over an established Redis client.
func NewRedisSource(client RedisCmdable) *RedisSource {
	return &RedisSource{client: client}
}

func (s *RedisSource) Targets(ctx context.Context) ([]Target, error) {
	members, err := s.client.SMembers(ctx, "recipients:targets").Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToReadConfig, err)
	}

	targets := make([]Target, 0, len(members))
	for _, m := range members {
		compact, jurisdiction, ok := strings.Cut(m, "/")
		if !ok || compact == "" || jurisdiction == "" {
			return nil, fmt.Errorf("%w: target %q is not compact/jurisdiction", ErrMalformedEntry, m)
		}
		targets = append(targets, Target{Compact: compact, Jurisdiction: jurisdiction})
	}
	return targets, nil
}

func (s *RedisSource) JurisdictionRecipients(ctx context.Context, compact, jurisdiction string) ([]string, error) {
	return s.addressList(ctx, fmt.Sprintf("recipients:%s:%s", compact, jurisdiction))
}

func (s *RedisSource) CompactRecipients(ctx context.Context, compact string) ([]string, error) {
	return s.addressList(ctx, "recipients:"+compact)
}

func (s *RedisSource) addressList(ctx context.Context, key string) ([]string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToReadConfig, err)
	}

	var addresses []string
	if err := json.Unmarshal([]byte(val), &addresses); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedEntry, key, err)
	}
	return addresses, nil
}
