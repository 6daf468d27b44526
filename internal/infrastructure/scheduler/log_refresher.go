// Package scheduler refresco periódico del log de despachos sobre robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// DefaultSchedule un refresco por minuto.
const DefaultSchedule = "@every 1m"

const runTimeout = 30 * time.Second

// Refresher operación que ejecuta cada tick; refreshed=false si se omitió (vista oculta).
type Refresher interface {
	RefreshLogIfVisible(ctx context.Context) (refreshed bool, err error)
}

// LogRefresher job cron que refresca el log. Los ticks no se solapan: si uno sigue en curso
// el siguiente se salta.
type LogRefresher struct {
	cron     *cron.Cron
	target   Refresher
	log      *logger.Logger
	schedule string
}

// NewLogRefresher valida el schedule y registra el job. "" usa DefaultSchedule.
func NewLogRefresher(schedule string, target Refresher, log *logger.Logger) (*LogRefresher, error) {
	if log == nil {
		log = logger.Nop()
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSchedule
	}
	l := log.Component("scheduler")
	cl := cronLogger{l}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	r := &LogRefresher{cron: c, target: target, log: l, schedule: schedule}
	if _, err := c.AddFunc(schedule, r.tick); err != nil {
		return nil, fmt.Errorf("schedule inválido %q: %w", schedule, err)
	}
	return r, nil
}

// Start arranca el planificador en su propia goroutine.
func (r *LogRefresher) Start() {
	r.log.Info().Str("schedule", r.schedule).Msg("refresco de log programado")
	r.cron.Start()
}

// Stop detiene el planificador y espera al job en curso o a que ctx expire.
func (r *LogRefresher) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce ejecuta un tick de forma síncrona.
func (r *LogRefresher) RunOnce(ctx context.Context) (bool, error) {
	refreshed, err := r.target.RefreshLogIfVisible(ctx)
	if err != nil {
		// La foto anterior se conserva; el próximo tick reintenta.
		r.log.Error().Err(err).Msg("refresco de log fallido")
		return false, err
	}
	return refreshed, nil
}

func (r *LogRefresher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_, _ = r.RunOnce(ctx)
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
