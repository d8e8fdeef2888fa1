package dto

import (
	"fmt"
	"salon/internal/domains/conversation/model"
	"salon/shared/clock"
	"salon/shared/timezone"
)

type StartRequest struct {
	ConversationID string `json:"conversation_id" validate:"omitempty,max=128"`
	ClientID       string `json:"client_id"       validate:"required"`
}

type EventRequest struct {
	Type       string `json:"type"        validate:"required,oneof=open_category toggle_service finish_services select_date choose_specific choose_any select_master select_time confirm back cancel"` //nolint:lll
	CategoryID string `json:"category_id"`
	ServiceID  string `json:"service_id"  validate:"required_if=Type toggle_service"`
	Date       string `json:"date"        validate:"required_if=Type select_date,omitempty,date"`
	MasterID   string `json:"master_id"   validate:"required_if=Type select_master"`
	Time       string `json:"time"        validate:"required_if=Type select_time,omitempty,hhmm"`
}

func (r *EventRequest) ToEvent() (model.Event, error) {
	event := model.Event{
		Type:       model.EventType(r.Type),
		CategoryID: r.CategoryID,
		ServiceID:  r.ServiceID,
		MasterID:   r.MasterID,
	}

	if r.Date != "" {
		date, err := clock.ParseDate(r.Date, timezone.GetLocation())
		if err != nil {
			return event, fmt.Errorf("invalid date: %w", err)
		}

		event.Date = date
	}

	if r.Time != "" {
		start, err := clock.Parse(r.Time)
		if err != nil {
			return event, fmt.Errorf("invalid time: %w", err)
		}

		event.Time = start
	}

	return event, nil
}
