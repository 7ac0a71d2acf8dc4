package cron

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceReturnsFirstError(t *testing.T) {
	s := NewScheduler()
	var calls atomic.Int32
	boom := errors.New("boom")

	s.AddJob(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error { calls.Add(1); return nil }})
	s.AddJob(Job{Name: "fail", Interval: time.Hour, Fn: func(context.Context) error { calls.Add(1); return boom }})

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_StartAndStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)

	s.AddJob(Job{
		Name:       "tick",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		},
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

type stubDashboard struct {
	gotDate string
	err     error
}

func (s *stubDashboard) GetDailyStatistics(_ context.Context, date string) (dashboard.DailyStatisticsResponse, error) {
	s.gotDate = date
	if s.err != nil {
		return dashboard.DailyStatisticsResponse{}, s.err
	}
	return dashboard.DailyStatisticsResponse{Date: date, Total: 3, Present: 2, NotApplied: 1}, nil
}

func TestStatisticsJobs_LogPreviousDay(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	// 2024-03-01 02:00 WIB is still 2024-02-29 in UTC; yesterday is taken in WIB.
	clock := &policy.FixedClock{T: time.Date(2024, 2, 29, 19, 0, 0, 0, time.UTC)}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	stub := &stubDashboard{}

	jobs := NewStatisticsJobs(stub, clock, wib, logger)
	require.NoError(t, jobs.LogPreviousDay(context.Background()))

	assert.Equal(t, "2024-02-29", stub.gotDate)
	assert.Contains(t, buf.String(), `"msg":"daily attendance digest"`)
	assert.Contains(t, buf.String(), `"not_applied":1`)
}

func TestStatisticsJobs_PropagatesError(t *testing.T) {
	stub := &stubDashboard{err: errors.New("db down")}
	jobs := NewStatisticsJobs(stub, &policy.FixedClock{T: time.Now()}, time.UTC, nil)

	err := jobs.LogPreviousDay(context.Background())
	assert.ErrorContains(t, err, "db down")
}
