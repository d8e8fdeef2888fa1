package model

import (
	"salon/shared/clock"
	"time"

	"github.com/shopspring/decimal"
)

// Command asks for one appointment with an already resolved master.
type Command struct {
	ClientID   string
	MasterID   string
	Date       time.Time
	Start      clock.Clock
	ServiceIDs []string
	Comment    string
}

// Result describes a committed appointment.
type Result struct {
	AppointmentID    string          `json:"appointment_id"`
	AssignedMasterID string          `json:"assigned_master_id"`
	ClientID         string          `json:"client_id"`
	Date             string          `json:"date"`
	StartTime        clock.Clock     `json:"start_time"`
	EndTime          clock.Clock     `json:"end_time"`
	ServiceIDs       []string        `json:"service_ids"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}
