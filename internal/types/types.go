package types

import "time"

// Job is a single image handed to the worker pool.
type Job struct {
	Index int
	Src   string
	Dst   string
}

// Result reports the outcome of one Job back to the collector.
type Result struct {
	Job      Job
	Err      error
	Duration time.Duration
}
