package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/jobs"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

// Queue backends accepted by QUEUE_BACKEND.
const (
	QueueBackendMemory = "memory"
	QueueBackendRedis  = "redis"
	QueueBackendSQS    = "sqs"
)

const memoryQueueBuffer = 256

// AWSConfigLoader resolves the shared SDK config on first use.
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildQueue selects the deferred-work transport named by QUEUE_BACKEND.
func BuildQueue(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (jobs.Queue, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.QueueBackend {
	case "", QueueBackendMemory:
		logger.Info("using in-memory notification queue")
		return jobs.NewMemoryQueue(memoryQueueBuffer), nil
	case QueueBackendRedis:
		client := BuildRedisClient(ctx, cfg, logger, true)
		if client == nil {
			return nil, fmt.Errorf("bootstrap: redis queue requires a reachable REDIS_ADDR")
		}
		logger.Info("using redis notification queue", "addr", cfg.RedisAddr, "queue", cfg.QueueName)
		return jobs.NewRedisQueue(client, cfg.QueueName), nil
	case QueueBackendSQS:
		if strings.TrimSpace(cfg.SQSQueueURL) == "" {
			return nil, fmt.Errorf("bootstrap: sqs queue requires SQS_QUEUE_URL")
		}
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: sqs queue requires aws config")
		}
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		logger.Info("using sqs notification queue", "queue_url", cfg.SQSQueueURL)
		return jobs.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown queue backend %q", cfg.QueueBackend)
	}
}

// BuildWorker wires the queue consumer with the configured concurrency.
func BuildWorker(processor jobs.Processor, queue jobs.Queue, cfg *appconfig.Config, logger *logging.Logger) *jobs.Worker {
	workers := 1
	if cfg != nil && cfg.WorkerCount > 0 {
		workers = cfg.WorkerCount
	}
	return jobs.NewWorker(processor, queue, logger, jobs.WithWorkerCount(workers))
}
