package dto_test

import (
	"salon/internal/domains/conversation/model"
	"salon/internal/domains/conversation/model/dto"
	"salon/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.EventRequest
		wantErr bool
	}{
		{name: "toggle", req: dto.EventRequest{Type: "toggle_service", ServiceID: "cut"}},
		{name: "toggle without service", req: dto.EventRequest{Type: "toggle_service"}, wantErr: true},
		{name: "date", req: dto.EventRequest{Type: "select_date", Date: "2030-03-04"}},
		{name: "malformed date", req: dto.EventRequest{Type: "select_date", Date: "04.03.2030"}, wantErr: true},
		{name: "time", req: dto.EventRequest{Type: "select_time", Time: "09:15"}},
		{name: "time missing", req: dto.EventRequest{Type: "select_time"}, wantErr: true},
		{name: "unknown type", req: dto.EventRequest{Type: "pay"}, wantErr: true},
		{name: "back", req: dto.EventRequest{Type: "back"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestEventRequest_ToEvent(t *testing.T) {
	req := dto.EventRequest{Type: "select_time", Time: "09:15", Date: "2030-03-04"}

	event, err := req.ToEvent()

	require.NoError(t, err)
	assert.Equal(t, model.EventSelectTime, event.Type)
	assert.Equal(t, "09:15", event.Time.String())
	assert.Equal(t, "2030-03-04", event.Date.Format("2006-01-02"))
}
