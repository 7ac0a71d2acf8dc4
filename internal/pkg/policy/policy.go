package policy

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLateAfterHour = 9
	DefaultShiftHours    = 8.0
	DefaultTimezone      = "Local"
)

// AttendancePolicy decides lateness and expected shift length.
type AttendancePolicy interface {
	// IsLate classifies a check-in at the given instant.
	IsLate(employeeID string, at time.Time) bool
	// ShiftHours is the expected working length beyond which hours count as extra.
	ShiftHours(emp employee.Employee) float64
	// Location is the zone in which attendance dates are truncated to midnight.
	Location() *time.Location
}

// HourThresholdPolicy marks a check-in late when its local hour is strictly greater than
// LateAfterHour, so with the default of 9 a 09:59 check-in is on time and 10:00 is late.
type HourThresholdPolicy struct {
	LateAfterHour     int
	DefaultShiftHours float64
	Overrides         map[string]int
	Loc               *time.Location
}

func NewDefaultPolicy() *HourThresholdPolicy {
	return &HourThresholdPolicy{
		LateAfterHour:     DefaultLateAfterHour,
		DefaultShiftHours: DefaultShiftHours,
		Overrides:         map[string]int{},
		Loc:               time.Local,
	}
}

func (p *HourThresholdPolicy) IsLate(employeeID string, at time.Time) bool {
	threshold := p.LateAfterHour
	if override, ok := p.Overrides[employeeID]; ok {
		threshold = override
	}
	return at.In(p.Location()).Hour() > threshold
}

func (p *HourThresholdPolicy) ShiftHours(emp employee.Employee) float64 {
	if emp.ShiftHours != nil && *emp.ShiftHours > 0 {
		return *emp.ShiftHours
	}
	return p.DefaultShiftHours
}

func (p *HourThresholdPolicy) Location() *time.Location {
	if p.Loc == nil {
		return time.Local
	}
	return p.Loc
}

type fileOverride struct {
	EmployeeID    string `yaml:"employee_id"`
	LateAfterHour int    `yaml:"late_after_hour"`
}

type fileSchema struct {
	Timezone          string         `yaml:"timezone"`
	LateAfterHour     *int           `yaml:"late_after_hour"`
	DefaultShiftHours *float64       `yaml:"default_shift_hours"`
	Overrides         []fileOverride `yaml:"overrides"`
}

var ErrInvalidPolicy = errors.New("invalid attendance policy")

// LoadFile reads a YAML policy. An empty path yields the defaults.
func LoadFile(path string) (*HourThresholdPolicy, error) {
	if path == "" {
		return NewDefaultPolicy(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a policy from YAML bytes, filling absent keys with defaults.
func Parse(raw []byte) (*HourThresholdPolicy, error) {
	var f fileSchema
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	p := NewDefaultPolicy()

	tz := f.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidPolicy, tz, err)
	}
	p.Loc = loc

	if f.LateAfterHour != nil {
		if !validHour(*f.LateAfterHour) {
			return nil, fmt.Errorf("%w: late_after_hour must be between 0 and 23", ErrInvalidPolicy)
		}
		p.LateAfterHour = *f.LateAfterHour
	}

	if f.DefaultShiftHours != nil {
		if *f.DefaultShiftHours <= 0 || *f.DefaultShiftHours > 24 {
			return nil, fmt.Errorf("%w: default_shift_hours must be in (0, 24]", ErrInvalidPolicy)
		}
		p.DefaultShiftHours = *f.DefaultShiftHours
	}

	for _, o := range f.Overrides {
		if o.EmployeeID == "" {
			return nil, fmt.Errorf("%w: override without employee_id", ErrInvalidPolicy)
		}
		if !validHour(o.LateAfterHour) {
			return nil, fmt.Errorf("%w: override for %s: late_after_hour must be between 0 and 23", ErrInvalidPolicy, o.EmployeeID)
		}
		p.Overrides[o.EmployeeID] = o.LateAfterHour
	}

	return p, nil
}

func validHour(h int) bool {
	return h >= 0 && h <= 23
}
