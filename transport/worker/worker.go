package worker

import (
	"context"
	"os"
	"os/signal"
	"salon/config"
	"salon/infras/kafka"
	"salon/internal/domains/notification/model"
	"salon/internal/domains/notification/service"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Worker consumes appointment events and runs the delayed reminder tasks they schedule.
type Worker struct {
	Config   *config.Config
	Kafka    kafka.Client
	Server   *asynq.Server
	Reminder service.Reminder
}

func New(cfg *config.Config, kafka kafka.Client, server *asynq.Server, reminder service.Reminder) *Worker {
	return &Worker{
		Config:   cfg,
		Kafka:    kafka,
		Server:   server,
		Reminder: reminder,
	}
}

// Mux routes queued tasks to their handlers.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(model.TaskTypeAppointmentReminder, w.Reminder.HandleReminderTask)

	return mux
}

func (w *Worker) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Server.Start(w.Mux()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start task server")
	}

	log.Info().Str("topic", w.Config.Kafka.Topics.AppointmentCreated).Msg("Starting appointment consumer.")

	w.Kafka.Consume(ctx, w.Config.Kafka.ConsumerGroup, w.Config.Kafka.Topics.AppointmentCreated, w.Reminder.HandleAppointmentCreated)

	log.Info().Msg("Received SIGTERM. Draining task server.")

	w.Server.Shutdown()
}
