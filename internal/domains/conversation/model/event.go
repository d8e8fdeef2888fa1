package model

import (
	"salon/shared/clock"
	"time"
)

type EventType string

const (
	EventOpenCategory   EventType = "open_category"
	EventToggleService  EventType = "toggle_service"
	EventFinishServices EventType = "finish_services"
	EventSelectDate     EventType = "select_date"
	EventChooseSpecific EventType = "choose_specific"
	EventChooseAny      EventType = "choose_any"
	EventSelectMaster   EventType = "select_master"
	EventSelectTime     EventType = "select_time"
	EventConfirm        EventType = "confirm"
	EventBack           EventType = "back"
	EventCancel         EventType = "cancel"
)

// Event is one user interaction. Only the field matching Type is read.
type Event struct {
	Type       EventType
	CategoryID string
	ServiceID  string
	Date       time.Time
	MasterID   string
	Time       clock.Clock
}
