package queue

//go:generate go run go.uber.org/mock/mockgen -source=./queue.go -destination=./mocks/queue_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"salon/config"
	"salon/infras/otel"
	"salon/shared/constant"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	QueueDefault = "default"
)

// Client enqueues delayed tasks. A task id that already exists is treated as enqueued.
type Client interface {
	Enqueue(ctx context.Context, taskID, taskType string, payload any, processAt time.Time) (err error)
	Close() error
}

type clientImpl struct {
	client *asynq.Client
	otel   otel.Otel
}

func RedisOpt(config *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     net.JoinHostPort(config.Queue.Redis.Host, config.Queue.Redis.Port),
		Password: config.Queue.Redis.Password,
		DB:       config.Queue.Redis.DB,
	}
}

func New(config *config.Config, otel otel.Otel) Client {
	log.Info().Str("host", config.Queue.Redis.Host).Int("db", config.Queue.Redis.DB).Msg("Task queue client initialized")

	return &clientImpl{
		client: asynq.NewClient(RedisOpt(config)),
		otel:   otel,
	}
}

// NewServer builds the worker side consuming the default queue.
func NewServer(config *config.Config) *asynq.Server {
	return asynq.NewServer(RedisOpt(config), asynq.Config{
		Concurrency: config.Queue.Concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			log.Error().Err(err).Str("type", task.Type()).Msg("Task processing failed")
		}),
	})
}

func (c *clientImpl) Enqueue(ctx context.Context, taskID, taskType string, payload any, processAt time.Time) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelQueueScopeName, constant.OtelQueueScopeName+".Enqueue")
	defer scope.End()
	defer scope.TraceIfError(&err)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx,
		asynq.NewTask(taskType, body),
		asynq.TaskID(taskID),
		asynq.ProcessAt(processAt),
		asynq.Queue(QueueDefault),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Debug().Str("task_id", taskID).Msg("Task already enqueued")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("type", taskType).Msg("Failed to enqueue task")

		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("task_id", info.ID).Str("type", taskType).Time("process_at", processAt).Msg("Task enqueued")

	return nil
}

func (c *clientImpl) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close task queue client: %w", err)
	}

	return nil
}
