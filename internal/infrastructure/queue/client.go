package queue

import (
	"github.com/hibiken/asynq"

	"gameguide-backend/internal/config"
)

// RedisOpt points asynq at the metadata DB; task keys are namespaced by asynq itself.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.MetadataDB,
	}
}

// NewClient returns an enqueue-only client. Callers own Close.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}
