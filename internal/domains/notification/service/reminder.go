package service

//go:generate go run go.uber.org/mock/mockgen -source=./reminder.go -destination=../mocks/reminder_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"salon/config"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/infras/queue"
	appointmentModel "salon/internal/domains/appointment/model"
	appointmentRepo "salon/internal/domains/appointment/repository"
	clientModel "salon/internal/domains/client/model"
	clientRepo "salon/internal/domains/client/repository"
	masterModel "salon/internal/domains/master/model"
	masterRepo "salon/internal/domains/master/repository"
	"salon/internal/domains/notification/model"
	"salon/shared"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/timezone"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Reminder turns created appointments into delayed reminder tasks and fires them.
type Reminder interface {
	HandleAppointmentCreated(ctx context.Context, message kafkaGo.Message) error
	HandleReminderTask(ctx context.Context, task *asynq.Task) error
}

type reminderImpl struct {
	kafka        kafka.Client
	queue        queue.Client
	masters      masterRepo.Master
	clients      clientRepo.Client
	appointments appointmentRepo.Appointment
	cfg          *config.Config
	otel         otel.Otel
	now          func() time.Time
}

func NewReminder(
	kafka kafka.Client,
	queue queue.Client,
	masters masterRepo.Master,
	clients clientRepo.Client,
	appointments appointmentRepo.Appointment,
	cfg *config.Config,
	otel otel.Otel,
) Reminder {
	return &reminderImpl{
		kafka:        kafka,
		queue:        queue,
		masters:      masters,
		clients:      clients,
		appointments: appointments,
		cfg:          cfg,
		otel:         otel,
		now:          timezone.Now,
	}
}

// HandleAppointmentCreated schedules one reminder per configured lead time that is still ahead.
func (r *reminderImpl) HandleAppointmentCreated(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleAppointmentCreated")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := kafka.DecodeKafkaMessage[model.AppointmentCreated](message)
	if err != nil {
		return fmt.Errorf("failed to decode appointment created: %w", err)
	}

	startsAt, err := event.StartsAt(timezone.GetLocation())
	if err != nil {
		log.Error().Err(err).Str("appointment_id", event.AppointmentID).Msg("failed to parse appointment start")

		return fmt.Errorf("failed to parse appointment start: %w", err)
	}

	master, err := r.masters.Get(ctx, shared.FilterByID(event.AssignedMasterID, masterModel.FieldID, masterModel.TableName), masterModel.FieldID, masterModel.FieldContactID)
	if err != nil {
		log.Error().Err(err).Str("master_id", event.AssignedMasterID).Msg("failed to resolve master contact")

		return fmt.Errorf("failed to resolve master contact: %w", err)
	}

	now := r.now()

	for _, hours := range r.cfg.Booking.ReminderHoursBefore {
		fireAt := startsAt.Add(-time.Duration(hours) * time.Hour)
		if !fireAt.After(now) {
			log.Debug().Str("appointment_id", event.AppointmentID).Int("hours_before", hours).Msg("reminder time already passed")

			continue
		}

		task := model.ReminderTask{
			AppointmentID:   event.AppointmentID,
			MasterContactID: master.ContactID,
			HoursBefore:     hours,
		}

		taskID := fmt.Sprintf("%s:%s:%dh", model.TaskTypeAppointmentReminder, event.AppointmentID, hours)
		if err = r.queue.Enqueue(ctx, taskID, model.TaskTypeAppointmentReminder, task, fireAt); err != nil {
			log.Error().Err(err).Str("appointment_id", event.AppointmentID).Msg("failed to schedule reminder")

			return fmt.Errorf("failed to schedule reminder: %w", err)
		}
	}

	return nil
}

// HandleReminderTask publishes the reminder only while the appointment is still pending or confirmed.
func (r *reminderImpl) HandleReminderTask(ctx context.Context, task *asynq.Task) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelQueueScopeName, constant.OtelQueueScopeName+".HandleReminderTask")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var payload model.ReminderTask
	if err = json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("failed to decode reminder task")

		return fmt.Errorf("failed to decode reminder task: %w", asynq.SkipRetry)
	}

	appointment, err := r.appointments.Get(ctx, shared.FilterByID(payload.AppointmentID, appointmentModel.FieldID, appointmentModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		log.Warn().Str("appointment_id", payload.AppointmentID).Msg("reminder for unknown appointment")

		return nil
	}

	if appointment.Status != appointmentModel.StatusPending && appointment.Status != appointmentModel.StatusConfirmed {
		log.Info().Str("appointment_id", appointment.ID).Str("status", appointment.Status).Msg("reminder skipped")

		return nil
	}

	client, err := r.clients.Get(ctx, shared.FilterByID(appointment.ClientID, clientModel.FieldID, clientModel.TableName), clientModel.FieldID, clientModel.FieldContactID)
	if err != nil {
		return fmt.Errorf("failed to resolve client contact: %w", err)
	}

	reminder := model.AppointmentReminder{
		AppointmentID:   appointment.ID,
		MasterID:        appointment.MasterID,
		MasterContactID: payload.MasterContactID,
		ClientID:        appointment.ClientID,
		ClientContactID: client.ContactID,
		Date:            appointment.AppointmentDate.Format(clock.DateLayout),
		Time:            appointment.StartTime,
		HoursBefore:     payload.HoursBefore,
	}

	err = r.kafka.SendMessages(ctx, r.cfg.Kafka.Topics.AppointmentReminder, kafka.Message{
		Key:     appointment.ID,
		Value:   reminder,
		Headers: map[string]string{model.HeaderEvent: model.EventAppointmentReminder},
	})
	if err != nil {
		return fmt.Errorf("failed to publish reminder: %w", err)
	}

	log.Info().Str("appointment_id", appointment.ID).Int("hours_before", payload.HoursBefore).Msg("reminder published")

	return nil
}
