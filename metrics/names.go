package metrics

// Instrument names recorded by the fractal renderer.
const (
	FramesRendered       = "fractal_frames_rendered_total"
	UnitsRendered        = "fractal_units_rendered_total"
	PixelsWritten        = "fractal_pixels_written_total"
	PlotLockAcquisitions = "fractal_plot_lock_acquisitions_total"
	WorkerFailures       = "fractal_worker_failures_total"
	WorkersActive        = "fractal_workers_active"
	FrameSeconds         = "fractal_frame_duration_seconds"
	UnitSeconds          = "fractal_unit_duration_seconds"
)

// AttrComponent is the attribute key naming the component that owns an instrument.
const AttrComponent = "component"

// Components that record instruments.
const (
	ComponentRenderer    = "renderer"
	ComponentWorkers     = "workers"
	ComponentFrameWriter = "frame_writer"
)
