package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourThresholdPolicy_IsLate(t *testing.T) {
	p := NewDefaultPolicy()
	p.Loc = time.UTC

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"early morning", time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC), false},
		{"quarter to nine", time.Date(2024, 3, 4, 8, 45, 0, 0, time.UTC), false},
		{"nine fifty nine", time.Date(2024, 3, 4, 9, 59, 59, 0, time.UTC), false},
		{"ten sharp", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), true},
		{"afternoon", time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsLate("emp-1", tt.at))
		})
	}
}

func TestHourThresholdPolicy_UsesLocalHour(t *testing.T) {
	p := NewDefaultPolicy()
	p.Loc = time.FixedZone("WIB", 7*60*60)

	// 02:30 UTC is 09:30 in UTC+7
	assert.False(t, p.IsLate("emp-1", time.Date(2024, 3, 4, 2, 30, 0, 0, time.UTC)))
	// 03:00 UTC is 10:00 in UTC+7
	assert.True(t, p.IsLate("emp-1", time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC)))
}

func TestHourThresholdPolicy_Override(t *testing.T) {
	p := NewDefaultPolicy()
	p.Loc = time.UTC
	p.Overrides["night-owl"] = 11

	at := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	assert.True(t, p.IsLate("emp-1", at))
	assert.False(t, p.IsLate("night-owl", at))
}

func TestHourThresholdPolicy_ShiftHours(t *testing.T) {
	p := NewDefaultPolicy()
	six := 6.0
	zero := 0.0

	assert.Equal(t, 8.0, p.ShiftHours(employee.Employee{}))
	assert.Equal(t, 6.0, p.ShiftHours(employee.Employee{ShiftHours: &six}))
	assert.Equal(t, 8.0, p.ShiftHours(employee.Employee{ShiftHours: &zero}))
}

func TestParse(t *testing.T) {
	raw := []byte(`
timezone: UTC
late_after_hour: 8
default_shift_hours: 7.5
overrides:
  - employee_id: emp-9
    late_after_hour: 12
`)
	p, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, p.Location())
	assert.Equal(t, 8, p.LateAfterHour)
	assert.Equal(t, 7.5, p.DefaultShiftHours)
	assert.Equal(t, 12, p.Overrides["emp-9"])
}

func TestParse_Defaults(t *testing.T) {
	p, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultLateAfterHour, p.LateAfterHour)
	assert.Equal(t, DefaultShiftHours, p.DefaultShiftHours)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad timezone", "timezone: Mars/Olympus"},
		{"hour too large", "late_after_hour: 24"},
		{"negative shift", "default_shift_hours: -1"},
		{"override without id", "overrides:\n  - late_after_hour: 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPolicy))
		})
	}
}

func TestLoadFile(t *testing.T) {
	p, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLateAfterHour, p.LateAfterHour)

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: UTC\nlate_after_hour: 10\n"), 0o600))

	p, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, p.LateAfterHour)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &FixedClock{T: at}
	assert.Equal(t, at, c.Now())
}
