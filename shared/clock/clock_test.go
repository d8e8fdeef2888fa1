package clock_test

import (
	"encoding/json"
	"salon/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    clock.Clock
		wantErr bool
	}{
		{name: "hours and minutes", input: "09:15", want: clock.New(9, 15)},
		{name: "with seconds", input: "18:30:00", want: clock.New(18, 30)},
		{name: "midnight", input: "00:00", want: 0},
		{name: "surrounding spaces", input: " 11:00 ", want: clock.New(11, 0)},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clock.Parse(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, clock.ErrInvalidClock)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "09:05", clock.New(9, 5).String())
	assert.Equal(t, "23:59", clock.New(23, 59).String())
	assert.Equal(t, "10:45", clock.New(9, 0).Add(105).String())
}

func TestClock_Scan(t *testing.T) {
	var c clock.Clock

	require.NoError(t, c.Scan(time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, clock.New(10, 30), c)

	require.NoError(t, c.Scan([]byte("12:45:00")))
	assert.Equal(t, clock.New(12, 45), c)

	require.NoError(t, c.Scan("08:00"))
	assert.Equal(t, clock.New(8, 0), c)

	assert.Error(t, c.Scan(42))
}

func TestClock_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		At clock.Clock `json:"at"`
	}{At: clock.New(9, 30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"09:30"}`, string(payload))

	var decoded struct {
		At clock.Clock `json:"at"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"at":"14:15"}`), &decoded))
	assert.Equal(t, clock.New(14, 15), decoded.At)

	assert.Error(t, json.Unmarshal([]byte(`{"at":"later"}`), &decoded))
}

func TestRange_Overlaps(t *testing.T) {
	busy := clock.Range{Start: clock.New(10, 0), End: clock.New(11, 0)}

	tests := []struct {
		name string
		slot clock.Range
		want bool
	}{
		{name: "ends when busy starts", slot: clock.NewRange(clock.New(9, 0), 60), want: false},
		{name: "starts when busy ends", slot: clock.NewRange(clock.New(11, 0), 60), want: false},
		{name: "crosses busy start", slot: clock.NewRange(clock.New(9, 15), 60), want: true},
		{name: "crosses busy end", slot: clock.NewRange(clock.New(10, 45), 60), want: true},
		{name: "inside busy", slot: clock.NewRange(clock.New(10, 15), 15), want: true},
		{name: "covers busy", slot: clock.NewRange(clock.New(9, 0), 180), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Overlaps(busy))
			assert.Equal(t, tt.want, busy.Overlaps(tt.slot))
		})
	}
}

func TestRange_Contains(t *testing.T) {
	window := clock.Range{Start: clock.New(9, 0), End: clock.New(12, 0)}

	assert.True(t, window.Contains(clock.NewRange(clock.New(11, 0), 60)))
	assert.False(t, window.Contains(clock.NewRange(clock.New(11, 15), 60)))
	assert.False(t, window.Contains(clock.NewRange(clock.New(8, 45), 30)))
	assert.Equal(t, 180, window.Minutes())
}

func TestWeekday(t *testing.T) {
	monday := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	for offset := range 7 {
		assert.Equal(t, offset, clock.Weekday(monday.AddDate(0, 0, offset)))
	}
}

func TestDateHelpers(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)

	parsed, err := clock.ParseDate("2024-01-15", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, parsed.Location())

	at := clock.New(9, 30).On(parsed)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, parsed, clock.Date(at))

	_, err = clock.ParseDate("15.01.2024", loc)
	assert.Error(t, err)
}
