package sim

import "errors"

// Sentinel errors returned by catalog lookups, content loading and the
// production queue. Callers classify with errors.Is.
var (
	// ErrNotFound is returned when a ship name, facility type or research
	// node id does not resolve against its registry.
	ErrNotFound = errors.New("not found")

	// ErrQueueFull is returned by ProductionQueue.QueueShip when the queue
	// (active job included) is already at capacity. A player-issued build
	// order must never be dropped silently.
	ErrQueueFull = errors.New("production queue full")

	// ErrBadContent is returned when catalog or research content fails
	// validation at load time: duplicate keys, dangling references,
	// prerequisite cycles. Always fatal to construction.
	ErrBadContent = errors.New("invalid content")
)
