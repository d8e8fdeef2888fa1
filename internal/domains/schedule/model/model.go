package model

import "salon/shared/clock"

const (
	TableName  = "master_work_schedule"
	EntityName = "work_schedule"

	FieldMasterID  = "master_id"
	FieldDayOfWeek = "day_of_week"
)

// WorkSchedule is a master's opening window on one weekday, 0 = Monday.
type WorkSchedule struct {
	MasterID  string `db:"master_id"`
	DayOfWeek int    `db:"day_of_week"`
	clock.Range
}

// Window is the cached lookup result; Works is false on days off.
type Window struct {
	Works bool        `json:"works"`
	Range clock.Range `json:"range"`
}
