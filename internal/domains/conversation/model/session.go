package model

import (
	"salon/shared/clock"
	"slices"
	"time"
)

const EntityName = "conversation"

type State string

const (
	StateServiceSelection State = "service_selection"
	StateDateSelection    State = "date_selection"
	StateMasterChoice     State = "master_choice"
	StateMasterSelection  State = "master_selection"
	StateTimeSelection    State = "time_selection"
	StateConfirmation     State = "confirmation"
	StateCommitted        State = "committed"
	StateCancelled        State = "cancelled"
)

// Mode says how the master is resolved. Specific sessions pick a master before time,
// any-mode sessions bind one when a slot is chosen.
type Mode string

const (
	ModeSpecific Mode = "specific"
	ModeAny      Mode = "any"
)

// Session is the serializable state of one in-progress booking conversation.
type Session struct {
	ID            string       `json:"id"`
	ClientID      string       `json:"client_id"`
	State         State        `json:"state"`
	CategoryID    string       `json:"category_id,omitempty"`
	ServiceIDs    []string     `json:"service_ids"`
	Date          time.Time    `json:"date,omitzero"`
	Mode          Mode         `json:"mode,omitempty"`
	CandidateIDs  []string     `json:"candidate_ids,omitempty"`
	MasterID      string       `json:"master_id,omitempty"`
	StartTime     *clock.Clock `json:"start_time,omitempty"`
	AppointmentID string       `json:"appointment_id,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func NewSession(id, clientID string, now time.Time) Session {
	return Session{
		ID:         id,
		ClientID:   clientID,
		State:      StateServiceSelection,
		ServiceIDs: []string{},
		UpdatedAt:  now,
	}
}

func (s Session) Terminal() bool {
	return s.State == StateCommitted || s.State == StateCancelled
}

func (s Session) Selected(serviceID string) bool {
	return slices.Contains(s.ServiceIDs, serviceID)
}

// Toggle adds serviceID to the selection or removes it when already selected.
func (s *Session) Toggle(serviceID string) {
	if s.Selected(serviceID) {
		s.ServiceIDs = slices.DeleteFunc(slices.Clone(s.ServiceIDs), func(id string) bool { return id == serviceID })

		return
	}

	s.ServiceIDs = append(slices.Clone(s.ServiceIDs), serviceID)
}

// ClearTime drops the chosen start and, in any-mode, the master bound with it.
func (s *Session) ClearTime() {
	s.StartTime = nil

	if s.Mode == ModeAny {
		s.MasterID = ""
	}
}

// Clone copies the slices so a rejected transition cannot leak into the caller's value.
func (s Session) Clone() Session {
	s.ServiceIDs = slices.Clone(s.ServiceIDs)
	s.CandidateIDs = slices.Clone(s.CandidateIDs)

	if s.StartTime != nil {
		start := *s.StartTime
		s.StartTime = &start
	}

	return s
}
