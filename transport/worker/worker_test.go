package worker_test

import (
	"context"
	"errors"
	"salon/config"
	notificationMocks "salon/internal/domains/notification/mocks"
	"salon/internal/domains/notification/model"
	"salon/transport/worker"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMux(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminder := notificationMocks.NewMockReminder(ctrl)

	w := worker.New(&config.Config{}, nil, nil, reminder)
	mux := w.Mux()

	t.Run("reminder tasks reach the reminder service", func(t *testing.T) {
		task := asynq.NewTask(model.TaskTypeAppointmentReminder, []byte(`{"appointment_id":"appt-1"}`))

		reminder.EXPECT().HandleReminderTask(gomock.Any(), task).Return(nil)

		assert.NoError(t, mux.ProcessTask(context.Background(), task))
	})

	t.Run("handler errors are returned for retry", func(t *testing.T) {
		task := asynq.NewTask(model.TaskTypeAppointmentReminder, nil)

		reminder.EXPECT().HandleReminderTask(gomock.Any(), task).Return(errors.New("kafka down"))

		assert.Error(t, mux.ProcessTask(context.Background(), task))
	})

	t.Run("unknown task types are rejected", func(t *testing.T) {
		assert.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("appointment:unknown", nil)))
	})
}
