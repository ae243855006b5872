// Package job implements the timed-job lifecycle: building a batch of
// timed jobs, starting and registering them, deriving their status from
// the clock and converting them to and from their persisted document.
package job
