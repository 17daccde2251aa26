package printing

import (
	"context"
	"errors"
)

// ErrSurfaceUnavailable reports that no render surface could be allocated or
// the document could not be attached. Non-fatal for callers; the print call
// is simply abandoned, with no retry.
var ErrSurfaceUnavailable = errors.New("surface_unavailable")

// Surface is a transient, isolated area that hosts exactly one document for
// printing and is then discarded. Implementations must make Release
// idempotent: the dispatcher releases on every error path and again from the
// best-effort teardown timer.
type Surface interface {
	// SetContent writes the document markup into the surface.
	SetContent(ctx context.Context, html string) error
	// Print instructs the surface to invoke the print/export action.
	Print(ctx context.Context) error
	// Release destroys the surface. Safe to call more than once.
	Release()
}

// SurfaceFactory allocates one exclusive surface per call. Concurrent calls
// each get their own isolated surface.
type SurfaceFactory interface {
	Acquire(ctx context.Context) (Surface, error)
}
