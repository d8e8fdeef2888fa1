package validator_test

import (
	"net/http"
	"salon/shared/failure"
	"salon/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type appointmentRequest struct {
	ClientID   string   `json:"client_id"   validate:"required"`
	Date       string   `json:"date"        validate:"required,date"`
	StartTime  string   `json:"start_time"  validate:"required,hhmm"`
	ServiceIDs []string `json:"service_ids" validate:"required,min=1,dive,required"`
	Status     string   `json:"status"      validate:"omitempty,oneof=pending confirmed"`
}

func validRequest() appointmentRequest {
	return appointmentRequest{
		ClientID:   "client-1",
		Date:       "2024-01-15",
		StartTime:  "09:30",
		ServiceIDs: []string{"svc-1"},
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *appointmentRequest)
		expectError string
	}{
		{
			name:   "valid request",
			mutate: func(_ *appointmentRequest) {},
		},
		{
			name:        "missing client",
			mutate:      func(r *appointmentRequest) { r.ClientID = "" },
			expectError: "client_id is required",
		},
		{
			name:        "malformed date",
			mutate:      func(r *appointmentRequest) { r.Date = "15/01/2024" },
			expectError: "date must be a date in YYYY-MM-DD format",
		},
		{
			name:        "malformed time",
			mutate:      func(r *appointmentRequest) { r.StartTime = "9.30" },
			expectError: "start_time must be a time of day in HH:MM format",
		},
		{
			name:        "no services",
			mutate:      func(r *appointmentRequest) { r.ServiceIDs = []string{} },
			expectError: "service_ids must contain at least 1 items",
		},
		{
			name:        "blank service id",
			mutate:      func(r *appointmentRequest) { r.ServiceIDs = []string{"svc-1", ""} },
			expectError: "service_ids[1] is required",
		},
		{
			name:        "unknown status",
			mutate:      func(r *appointmentRequest) { r.Status = "archived" },
			expectError: "status must be one of pending confirmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.expectError)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.True(t, failure.HasReason(err, failure.ReasonValidation))
		})
	}
}

func TestValidateParam(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError string
	}{
		{name: "valid time", field: "18:45", tag: "hhmm"},
		{name: "invalid time", field: "18:75", tag: "hhmm", expectError: "param must be a time of day in HH:MM format"},
		{name: "valid date", field: "2024-02-29", tag: "date"},
		{name: "invalid date", field: "2023-02-29", tag: "date", expectError: "param must be a date in YYYY-MM-DD format"},
		{name: "valid uuid", field: "550e8400-e29b-41d4-a716-446655440000", tag: "uuid"},
		{name: "empty required", field: "", tag: "required", expectError: "param is required"},
		{name: "short string", field: "abc", tag: "min=8", expectError: "param must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateParam("param", tt.field, tt.tag)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.expectError)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"client_id":"c-1","date":"2024-01-15","start_time":"10:00","service_ids":["s-1","s-2"]}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"client_id":"c-1","date":"2024-01-15","start_time":"10","service_ids":["s-1"]}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"client_id":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data appointmentRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
