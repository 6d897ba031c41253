package fractal

import (
	"errors"
	"fmt"
)

// WorkerMetaError exposes which worker failed and on which unit.
type WorkerMetaError interface {
	error
	Unwrap() error
	WorkerID() int
	Unit() (WorkUnit, bool)
}

type workerTaggedError struct {
	err    error
	worker int
	unit   WorkUnit
}

func newWorkerError(err error, worker int, unit WorkUnit) error {
	if err == nil {
		return nil
	}
	return &workerTaggedError{err: err, worker: worker, unit: unit}
}

func (e *workerTaggedError) Error() string {
	if e.unit == nil {
		return fmt.Sprintf("worker %d: %s", e.worker, e.err)
	}
	return fmt.Sprintf("worker %d, %v: %s", e.worker, e.unit, e.err)
}

func (e *workerTaggedError) Unwrap() error { return e.err }

func (e *workerTaggedError) WorkerID() int { return e.worker }

func (e *workerTaggedError) Unit() (WorkUnit, bool) { return e.unit, e.unit != nil }

func (e *workerTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "worker(id=%d,unit=%v): %+v", e.worker, e.unit, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractWorkerID returns the id of the worker that produced err, if present.
func ExtractWorkerID(err error) (int, bool) {
	var wme WorkerMetaError
	if errors.As(err, &wme) {
		return wme.WorkerID(), true
	}
	return 0, false
}

// ExtractUnit returns the work unit being rendered when err occurred, if present.
func ExtractUnit(err error) (WorkUnit, bool) {
	var wme WorkerMetaError
	if errors.As(err, &wme) {
		return wme.Unit()
	}
	return nil, false
}
