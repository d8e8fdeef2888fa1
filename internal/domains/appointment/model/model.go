package model

import (
	"salon/shared/clock"
	"salon/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	ServiceLinkTableName  = "appointment_services"
	ServiceLinkEntityName = "appointment_service"

	FieldID              = "id"
	FieldClientID        = "client_id"
	FieldMasterID        = "master_id"
	FieldAppointmentDate = "appointment_date"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldStatus          = "status"
	FieldAppointmentID   = "appointment_id"
	FieldServiceID       = "service_id"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCancelled  = "cancelled"
	StatusCompleted  = "completed"
	StatusNoShow     = "no_show"
	StatusInProgress = "in_progress"
	StatusRejected   = "rejected"
)

var (
	Statuses = []string{
		StatusPending,
		StatusConfirmed,
		StatusCancelled,
		StatusCompleted,
		StatusNoShow,
		StatusInProgress,
		StatusRejected,
	}

	// BlockingStatuses occupy the master's time; the rest free it.
	BlockingStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress}
)

func IsValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

func IsBlocking(status string) bool {
	return slices.Contains(BlockingStatuses, status)
}

type Appointment struct {
	ID              string      `db:"id"`
	ClientID        string      `db:"client_id"`
	MasterID        string      `db:"master_id"`
	AppointmentDate time.Time   `db:"appointment_date"`
	StartTime       clock.Clock `db:"start_time"`
	EndTime         clock.Clock `db:"end_time"`
	Status          string      `db:"status"`
	Comment         string      `db:"comment"`
	model.Metadata
}

func (a Appointment) Range() clock.Range {
	return clock.Range{Start: a.StartTime, End: a.EndTime}
}

// StartsAt places the start time on the appointment date in loc.
func (a Appointment) StartsAt(loc *time.Location) time.Time {
	year, month, day := a.AppointmentDate.Date()

	return time.Date(year, month, day, a.StartTime.Hour(), a.StartTime.Minute(), 0, 0, loc)
}

type ServiceLink struct {
	AppointmentID string `db:"appointment_id"`
	ServiceID     string `db:"service_id"`
}
