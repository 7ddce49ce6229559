package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunTriggersJob(t *testing.T) {
	s := New(zap.NewNop())
	var calls atomic.Int32
	s.Register(Job{
		Name:     "probe",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	require.NoError(t, s.Run(context.Background(), "probe"))
	require.Eventually(t, func() bool {
		res, err := s.GetTask("probe")
		return err == nil && res.Status == StatusFulfill
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunUnknownJob(t *testing.T) {
	s := New(zap.NewNop())
	assert.Error(t, s.Run(context.Background(), "missing"))

	_, err := s.GetTask("missing")
	assert.Error(t, err)
}

func TestFailedJobRecordsMessage(t *testing.T) {
	s := New(zap.NewNop())
	s.Register(Job{
		Name:     "broken",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			return errors.New("link probe timeout")
		},
	})

	require.NoError(t, s.Run(context.Background(), "broken"))
	require.Eventually(t, func() bool {
		res, err := s.GetTask("broken")
		return err == nil && res.Status == StatusReject && res.Message == "link probe timeout"
	}, time.Second, 5*time.Millisecond)
}

func TestListIsSortedByName(t *testing.T) {
	s := New(zap.NewNop())
	noop := func(ctx context.Context) error { return nil }
	s.Register(Job{Name: "sweep", Interval: time.Hour, Fn: noop})
	s.Register(Job{Name: "purge", Interval: time.Hour, Fn: noop})

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, "purge", items[0].Name)
	assert.Equal(t, "sweep", items[1].Name)
	assert.Equal(t, StatusIdle, items[0].Status)
}
