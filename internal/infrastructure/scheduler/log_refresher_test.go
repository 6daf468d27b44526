package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/scheduler"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

type fakeRefresher struct {
	visible atomic.Bool
	calls   atomic.Int32
	runs    atomic.Int32
	err     error
}

func (f *fakeRefresher) RefreshLogIfVisible(context.Context) (bool, error) {
	f.calls.Add(1)
	if f.err != nil {
		return false, f.err
	}
	if !f.visible.Load() {
		return false, nil
	}
	f.runs.Add(1)
	return true, nil
}

func TestNewLogRefresher_ScheduleInvalido(t *testing.T) {
	_, err := scheduler.NewLogRefresher("cada rato", &fakeRefresher{}, logger.Nop())
	assert.Error(t, err)
}

func TestRunOnce_RespetaVisibilidad(t *testing.T) {
	f := &fakeRefresher{}
	r, err := scheduler.NewLogRefresher("", f, logger.Nop())
	require.NoError(t, err)

	ok, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	f.visible.Store(true)
	ok, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunOnce_PropagaError(t *testing.T) {
	f := &fakeRefresher{err: errors.New("caída")}
	r, err := scheduler.NewLogRefresher("@every 1h", f, logger.Nop())
	require.NoError(t, err)

	_, err = r.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestStartStop_EjecutaTicks(t *testing.T) {
	f := &fakeRefresher{}
	f.visible.Store(true)
	r, err := scheduler.NewLogRefresher("@every 1s", f, logger.Nop())
	require.NoError(t, err)

	r.Start()
	assert.Eventually(t, func() bool { return f.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}
