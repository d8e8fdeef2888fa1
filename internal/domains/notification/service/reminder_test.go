package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/kafka"
	kafkaMocks "salon/infras/kafka/mocks"
	"salon/infras/otel/mocks"
	queueMocks "salon/infras/queue/mocks"
	appointmentMocks "salon/internal/domains/appointment/mocks"
	appointmentModel "salon/internal/domains/appointment/model"
	clientMocks "salon/internal/domains/client/mocks"
	clientModel "salon/internal/domains/client/model"
	masterMocks "salon/internal/domains/master/mocks"
	masterModel "salon/internal/domains/master/model"
	"salon/internal/domains/notification/model"
	"salon/internal/domains/notification/service"
	"salon/shared/clock"
	"salon/shared/timezone"
)

type reminderDeps struct {
	kafka        *kafkaMocks.MockClient
	queue        *queueMocks.MockClient
	masters      *masterMocks.MockMaster
	clients      *clientMocks.MockClient
	appointments *appointmentMocks.MockAppointmentRepository
}

func newReminder(t *testing.T, now time.Time) (service.Reminder, reminderDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	deps := reminderDeps{
		kafka:        kafkaMocks.NewMockClient(ctrl),
		queue:        queueMocks.NewMockClient(ctrl),
		masters:      masterMocks.NewMockMaster(ctrl),
		clients:      clientMocks.NewMockClient(ctrl),
		appointments: appointmentMocks.NewMockAppointmentRepository(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.ReminderHoursBefore = []int{8, 2}
	cfg.Kafka.Topics.AppointmentReminder = "appointment.reminder"

	reminder := service.NewReminder(deps.kafka, deps.queue, deps.masters, deps.clients, deps.appointments, cfg, mocks.NewOtel())
	service.SetReminderClock(reminder, func() time.Time { return now })

	return reminder, deps
}

func createdMessage(t *testing.T, start clock.Clock) kafkaGo.Message {
	t.Helper()

	msg, err := (&kafka.Message{
		Key: "apt-1",
		Value: model.AppointmentCreated{
			AppointmentID:    "apt-1",
			AssignedMasterID: "m-1",
			ClientID:         "client-1",
			Date:             "2024-01-15",
			Time:             start,
			ServiceIDs:       []string{"cut"},
		},
	}).ToKafkaMessage()
	require.NoError(t, err)

	return msg
}

func TestReminder_HandleAppointmentCreated(t *testing.T) {
	loc := timezone.GetLocation()
	now := time.Date(2024, 1, 15, 6, 0, 0, 0, loc)

	tests := []struct {
		name      string
		start     clock.Clock
		wantHours []int
	}{
		{name: "both reminders ahead", start: clock.New(16, 0), wantHours: []int{8, 2}},
		{name: "eight hour reminder already passed", start: clock.New(10, 0), wantHours: []int{2}},
		{name: "exactly now is skipped", start: clock.New(14, 0), wantHours: []int{2}},
		{name: "all reminders passed", start: clock.New(7, 30), wantHours: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder, deps := newReminder(t, now)

			deps.masters.EXPECT().
				Get(gomock.Any(), gomock.Any(), masterModel.FieldID, masterModel.FieldContactID).
				Return(masterModel.Master{ID: "m-1", ContactID: "tg-42"}, nil)

			for _, hours := range tt.wantHours {
				fireAt := tt.start.On(now).Add(-time.Duration(hours) * time.Hour)

				deps.queue.EXPECT().
					Enqueue(gomock.Any(), gomock.Any(), model.TaskTypeAppointmentReminder,
						model.ReminderTask{AppointmentID: "apt-1", MasterContactID: "tg-42", HoursBefore: hours}, fireAt).
					Return(nil)
			}

			err := reminder.HandleAppointmentCreated(context.Background(), createdMessage(t, tt.start))

			assert.NoError(t, err)
		})
	}
}

func TestReminder_HandleAppointmentCreated_Errors(t *testing.T) {
	now := time.Date(2024, 1, 15, 6, 0, 0, 0, timezone.GetLocation())

	t.Run("malformed message", func(t *testing.T) {
		reminder, _ := newReminder(t, now)

		err := reminder.HandleAppointmentCreated(context.Background(), kafkaGo.Message{Value: []byte("{")})

		assert.Error(t, err)
	})

	t.Run("queue error", func(t *testing.T) {
		reminder, deps := newReminder(t, now)

		deps.masters.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(masterModel.Master{ID: "m-1"}, nil)
		deps.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err := reminder.HandleAppointmentCreated(context.Background(), createdMessage(t, clock.New(18, 0)))

		assert.Error(t, err)
	})
}

func TestReminder_HandleReminderTask(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, timezone.GetLocation())

	payload, err := json.Marshal(model.ReminderTask{AppointmentID: "apt-1", MasterContactID: "tg-42", HoursBefore: 2})
	require.NoError(t, err)

	appointment := appointmentModel.Appointment{
		ID:              "apt-1",
		ClientID:        "client-1",
		MasterID:        "m-1",
		AppointmentDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       clock.New(10, 0),
		EndTime:         clock.New(11, 0),
	}

	tests := []struct {
		name        string
		status      string
		found       bool
		wantPublish bool
	}{
		{name: "pending is reminded", status: appointmentModel.StatusPending, found: true, wantPublish: true},
		{name: "confirmed is reminded", status: appointmentModel.StatusConfirmed, found: true, wantPublish: true},
		{name: "cancelled is skipped", status: appointmentModel.StatusCancelled, found: true},
		{name: "in progress is skipped", status: appointmentModel.StatusInProgress, found: true},
		{name: "unknown appointment is skipped", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder, deps := newReminder(t, now)

			stored := appointmentModel.Appointment{}
			if tt.found {
				stored = appointment
				stored.Status = tt.status
			}

			deps.appointments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

			if tt.wantPublish {
				deps.clients.EXPECT().
					Get(gomock.Any(), gomock.Any(), clientModel.FieldID, clientModel.FieldContactID).
					Return(clientModel.Client{ID: "client-1", ContactID: "tg-7"}, nil)
				deps.kafka.EXPECT().
					SendMessages(gomock.Any(), "appointment.reminder", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						require.Len(t, messages, 1)

						sent, ok := messages[0].Value.(model.AppointmentReminder)
						require.True(t, ok)
						assert.Equal(t, "tg-42", sent.MasterContactID)
						assert.Equal(t, "tg-7", sent.ClientContactID)
						assert.Equal(t, "2024-01-15", sent.Date)
						assert.Equal(t, "10:00", sent.Time.String())

						return nil
					})
			}

			err := reminder.HandleReminderTask(context.Background(), asynq.NewTask(model.TaskTypeAppointmentReminder, payload))

			assert.NoError(t, err)
		})
	}
}

func TestReminder_HandleReminderTask_BadPayload(t *testing.T) {
	reminder, _ := newReminder(t, time.Now())

	err := reminder.HandleReminderTask(context.Background(), asynq.NewTask(model.TaskTypeAppointmentReminder, []byte("nope")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
