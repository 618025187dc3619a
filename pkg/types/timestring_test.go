package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_MinutesOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   TimeString
		want    int
		wantErr bool
	}{
		{name: "morning", input: "9:00 AM", want: 9 * 60},
		{name: "morning with minutes", input: "10:30 AM", want: 10*60 + 30},
		{name: "afternoon", input: "2:00 PM", want: 14 * 60},
		{name: "noon stays at 12", input: "12:00 PM", want: 12 * 60},
		{name: "midnight maps to 0", input: "12:00 AM", want: 0},
		{name: "last evening slot", input: "11:45 PM", want: 23*60 + 45},
		{name: "lowercase period", input: "9:00 am", want: 9 * 60},
		{name: "empty string", input: "", wantErr: true},
		{name: "24-hour format", input: "14:00", wantErr: true},
		{name: "hour out of range", input: "13:00 PM", wantErr: true},
		{name: "bad minutes", input: "9:60 AM", wantErr: true},
		{name: "unknown period", input: "9:00 XM", wantErr: true},
		{name: "placeholder value", input: "__swap__123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.MinutesOfDay()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input TimeString
		add   int
		want  TimeString
	}{
		{name: "within the hour", input: "9:00 AM", add: 30, want: "9:30 AM"},
		{name: "crosses noon", input: "11:45 AM", add: 30, want: "12:15 PM"},
		{name: "crosses midnight", input: "11:45 PM", add: 30, want: "12:15 AM"},
		{name: "negative shift", input: "9:00 AM", add: -30, want: "8:30 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.AddMinutes(tt.add)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unparseable value fails", func(t *testing.T) {
		_, err := TimeString("not a time").AddMinutes(30)
		assert.Error(t, err)
	})
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("9:00 AM").IsBefore("2:00 PM"))
	assert.False(t, TimeString("2:00 PM").IsBefore("9:00 AM"))
	assert.False(t, TimeString("9:00 AM").IsBefore("9:00 AM"))

	assert.True(t, TimeString("2:00 PM").IsAfter("9:00 AM"))
	assert.False(t, TimeString("9:00 AM").IsAfter("2:00 PM"))

	// Нечитаемые значения не упорядочены ни с чем
	assert.False(t, TimeString("garbage").IsBefore("9:00 AM"))
	assert.False(t, TimeString("garbage").IsAfter("9:00 AM"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	instant, err := TimeString("2:30 PM").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), instant)

	// Компонент времени даты игнорируется
	noon := time.Date(2026, 3, 15, 18, 45, 12, 0, time.UTC)
	instant, err = TimeString("9:00 AM").At(noon)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), instant)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("  10:30 AM  ")
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30 AM"), ts)

	_, err = NewTimeStringFromString("25:00 PM")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeString_RoundTrip(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, TimeString("2:30 PM"), ts)
	require.NoError(t, ts.Validate())
}
