package repository_test

import (
	"context"
	"errors"
	"regexp"
	"salon/infras/otel/mocks"
	"salon/infras/postgres"
	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/repository"
	"salon/shared/clock"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day     = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	lockSQL = regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))")
	lockKey = "appointments:m-1:2030-03-04"

	insertAppointmentSQL = regexp.QuoteMeta("INSERT INTO appointments (")
	insertLinksSQL       = regexp.QuoteMeta("INSERT INTO appointment_services (")
	busySQL              = regexp.QuoteMeta("SELECT start_time, end_time FROM appointments WHERE")
)

func newLedger(t *testing.T) (repository.Appointment, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func booking() model.Appointment {
	return model.Appointment{
		ID:              "apt-1",
		ClientID:        "client-1",
		MasterID:        "m-1",
		AppointmentDate: day,
		StartTime:       clock.New(11, 0),
		EndTime:         clock.New(12, 0),
		Status:          model.StatusPending,
	}
}

func TestTransaction_LocksBeforeWriting(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(busySQL).ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).AddRow("10:00:00", "11:00:00"))
	mock.ExpectExec(insertAppointmentSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertLinksSQL).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := ledger.Transaction(context.Background(), "m-1", day, func(tx repository.LedgerTx) error {
		busy, err := tx.BusyIntervals(context.Background(), "m-1", day)
		if err != nil {
			return err
		}

		assert.Equal(t, []clock.Range{{Start: clock.New(10, 0), End: clock.New(11, 0)}}, busy)

		if err := tx.InsertAppointment(context.Background(), booking()); err != nil {
			return err
		}

		return tx.InsertServiceLinks(context.Background(), []model.ServiceLink{
			{AppointmentID: "apt-1", ServiceID: "cut"},
			{AppointmentID: "apt-1", ServiceID: "color"},
		})
	})

	require.NoError(t, err)
}

func TestTransaction_Failures(t *testing.T) {
	errLock := errors.New("lock timeout")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantFn    bool
		wantErr   error
	}{
		{
			name: "exclusion violation is an overlap",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(lockSQL).WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(insertAppointmentSQL).WillReturnError(&pq.Error{Code: "23P01"})
				mock.ExpectRollback()
			},
			wantFn:  true,
			wantErr: repository.ErrOverlap,
		},
		{
			name: "lock failure skips the writes",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(lockSQL).WithArgs(lockKey).WillReturnError(errLock)
				mock.ExpectRollback()
			},
			wantErr: errLock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, mock := newLedger(t)
			tt.setupMock(mock)

			called := false
			err := ledger.Transaction(context.Background(), "m-1", day, func(tx repository.LedgerTx) error {
				called = true

				return tx.InsertAppointment(context.Background(), booking())
			})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFn, called)
		})
	}
}

func TestUpdateStatus_Overlap(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET")).WillReturnError(&pq.Error{Code: "23P01"})

	err := ledger.UpdateStatus(context.Background(), "apt-1", model.StatusPending, "staff-1")

	require.ErrorIs(t, err, repository.ErrOverlap)
}
