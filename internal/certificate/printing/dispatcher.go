package printing

import (
	"context"
	"time"

	"github.com/shafaqzafar/demoacademia/internal/certificate/render"
	"go.uber.org/zap"
)

// DefaultReleaseGrace is how long a surface outlives its print dispatch.
// There is no reliable completion signal for an interactive print flow, so
// teardown is a timer, not a completion event: the surface may be released
// while printing is still in progress, or kept alive slightly longer than
// needed. Best effort on purpose.
const DefaultReleaseGrace = 4 * time.Second

// Dispatcher displays rendered documents on transient surfaces. Each Display
// call allocates one exclusive surface; concurrent calls never share state.
type Dispatcher struct {
	surfaces SurfaceFactory
	grace    time.Duration
	log      *zap.Logger

	// after is swapped in tests to make teardown observable.
	after func(d time.Duration, fn func()) *time.Timer
}

func NewDispatcher(surfaces SurfaceFactory, grace time.Duration, log *zap.Logger) *Dispatcher {
	if grace <= 0 {
		grace = DefaultReleaseGrace
	}
	return &Dispatcher{
		surfaces: surfaces,
		grace:    grace,
		log:      log.Named("printing.dispatcher"),
		after:    time.AfterFunc,
	}
}

// Display writes the document into a fresh surface and dispatches the print
// action. The surface is released on every error path immediately, and after
// the grace period otherwise. Failures are terminal for this call; there are
// no retries.
func (d *Dispatcher) Display(ctx context.Context, doc *render.Document) error {
	surface, err := d.surfaces.Acquire(ctx)
	if err != nil {
		d.log.Warn("render surface unavailable", zap.Error(err))
		return ErrSurfaceUnavailable
	}

	if err := surface.SetContent(ctx, doc.HTML()); err != nil {
		surface.Release()
		d.log.Warn("attach document failed", zap.Error(err))
		return ErrSurfaceUnavailable
	}

	if err := surface.Print(ctx); err != nil {
		surface.Release()
		d.log.Warn("print dispatch failed", zap.Error(err))
		return ErrSurfaceUnavailable
	}

	d.after(d.grace, surface.Release)
	return nil
}
