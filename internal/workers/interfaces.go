// Package workers runs the controller's background loops, such as the
// keypad polling worker. A Worker blocks inside Run until its context
// is canceled; the Workers aggregate starts each one in sequence, so
// main only has to launch a single goroutine.
package workers

// Worker is a background loop started once at boot. Run blocks for
// the lifetime of the worker.
type Worker interface {
	Run()
}
