package model

import (
	"salon/shared/clock"
	"time"
)

const (
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentReminder = "appointment.reminder"

	HeaderEvent = "event"

	TaskTypeAppointmentReminder = "appointment:reminder"
)

// AppointmentCreated is emitted once per committed booking.
type AppointmentCreated struct {
	AppointmentID    string      `json:"appointment_id"`
	AssignedMasterID string      `json:"assigned_master_id"`
	ClientID         string      `json:"client_id"`
	Date             string      `json:"date"`
	Time             clock.Clock `json:"time"`
	ServiceIDs       []string    `json:"service_ids"`
	OccurredAt       time.Time   `json:"occurred_at"`
}

// StartsAt places the appointment start on its date in loc.
func (e AppointmentCreated) StartsAt(loc *time.Location) (time.Time, error) {
	date, err := clock.ParseDate(e.Date, loc)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return e.Time.On(date), nil
}

// ReminderTask is the delayed task payload.
type ReminderTask struct {
	AppointmentID   string `json:"appointment_id"`
	MasterContactID string `json:"master_contact_id"`
	HoursBefore     int    `json:"hours_before"`
}

// AppointmentReminder is handed to the external dispatcher.
type AppointmentReminder struct {
	AppointmentID   string      `json:"appointment_id"`
	MasterID        string      `json:"master_id"`
	MasterContactID string      `json:"master_contact_id"`
	ClientID        string      `json:"client_id"`
	ClientContactID string      `json:"client_contact_id"`
	Date            string      `json:"date"`
	Time            clock.Clock `json:"time"`
	HoursBefore     int         `json:"hours_before"`
}
