package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"forgekit/internal/pkg/config"
)

// fakeObserver 按调用次数依次返回预设值
type fakeObserver struct {
	mu     sync.Mutex
	values []string
	calls  int
	err    error
}

func (f *fakeObserver) Observe(_ context.Context, _ config.WatchJob) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	v := f.values[min(f.calls, len(f.values)-1)]
	f.calls++
	return v, nil
}

func (f *fakeObserver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var releaseJob = config.WatchJob{Name: "docs", Platform: "cnb", Kind: "release", Target: "cnb/docs", Cron: "* * * * * *"}

func TestTriggerDetectsChange(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := &fakeObserver{values: []string{"v1", "v1", "v2"}}
	s, err := NewScheduler(obs, zap.New(core), []config.WatchJob{releaseJob})
	require.NoError(t, err)

	v, changed, err := s.Trigger("docs")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.False(t, changed)

	_, changed, err = s.Trigger("docs")
	require.NoError(t, err)
	assert.False(t, changed)

	v, changed, err = s.Trigger("docs")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.True(t, changed)

	last, ok := s.Last("docs")
	assert.True(t, ok)
	assert.Equal(t, "v2", last)

	entries := logs.FilterMessage("观察值变化").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "v1", entries[0].ContextMap()["previous"])
	assert.Equal(t, "v2", entries[0].ContextMap()["value"])
}

func TestTriggerErrors(t *testing.T) {
	obs := &fakeObserver{err: errors.New("boom")}
	s, err := NewScheduler(obs, nil, []config.WatchJob{releaseJob})
	require.NoError(t, err)

	_, _, err = s.Trigger("docs")
	assert.EqualError(t, err, "boom")
	_, ok := s.Last("docs")
	assert.False(t, ok)

	_, _, err = s.Trigger("missing")
	assert.Error(t, err)

	// 失败只记录日志
	s.RunOnce()
	assert.Equal(t, 0, obs.count())
}

func TestDuplicateJobName(t *testing.T) {
	_, err := NewScheduler(&fakeObserver{}, nil, []config.WatchJob{releaseJob, releaseJob})
	assert.Error(t, err)
}

func TestStartInvalidCron(t *testing.T) {
	job := releaseJob
	job.Cron = "not a cron"
	s, err := NewScheduler(&fakeObserver{values: []string{"v1"}}, nil, []config.WatchJob{job})
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartRunsJobs(t *testing.T) {
	obs := &fakeObserver{values: []string{"v1"}}
	s, err := NewScheduler(obs, nil, []config.WatchJob{releaseJob})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return obs.count() > 0 }, 3*time.Second, 50*time.Millisecond)
	last, ok := s.Last("docs")
	assert.True(t, ok)
	assert.Equal(t, "v1", last)
}
