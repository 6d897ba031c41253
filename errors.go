package fractal

import "errors"

const Namespace = "fractal"

var (
	ErrInvalidConfig    = errors.New(Namespace + ": invalid configuration")
	ErrInvalidFrame     = errors.New(Namespace + ": invalid frame parameters")
	ErrRenderInProgress = errors.New(Namespace + ": another render pass is still running")
	ErrWorkerPanicked   = errors.New(Namespace + ": render worker panicked")
)
