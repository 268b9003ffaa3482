package sim

import "fmt"

// defaultQueueCapacity bounds a production queue, active job included.
const defaultQueueCapacity = 10

// ProductionJob is one queued build: the hull being built and the seconds
// of construction remaining. Remaining only decreases.
type ProductionJob struct {
	Def       *ShipDefinition
	Remaining float64
}

// ProductionQueue is a bounded FIFO of build jobs with a single active
// timer. One queue per base or production facility.
type ProductionQueue struct {
	catalog  *Catalog
	capacity int
	active   *ProductionJob
	pending  []*ProductionJob
	events   *EventLog
}

// NewProductionQueue creates a queue over the given catalog. capacity <= 0
// selects the default. events may be nil.
func NewProductionQueue(catalog *Catalog, capacity int, events *EventLog) *ProductionQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &ProductionQueue{
		catalog:  catalog,
		capacity: capacity,
		events:   events,
	}
}

// JobCount returns the number of jobs in the queue, active job included.
func (q *ProductionQueue) JobCount() int {
	n := len(q.pending)
	if q.active != nil {
		n++
	}
	return n
}

// Capacity returns the maximum job count.
func (q *ProductionQueue) Capacity() int { return q.capacity }

// QueueShip appends a build job for the named hull, promoting it to active
// immediately if nothing is building. Fails with ErrNotFound for an unknown
// hull and ErrQueueFull at capacity; a full queue must reject loudly rather
// than drop the order.
func (q *ProductionQueue) QueueShip(name string) error {
	def, err := q.catalog.ShipByName(name)
	if err != nil {
		return err
	}
	if q.JobCount() >= q.capacity {
		return fmt.Errorf("queue ship %q: %w", name, ErrQueueFull)
	}
	job := &ProductionJob{Def: def, Remaining: def.BuildTime}
	if q.active == nil {
		q.active = job
	} else {
		q.pending = append(q.pending, job)
	}
	if q.events != nil {
		q.events.Add("production", "queued", name, def.BuildTime)
	}
	return nil
}

// Update distributes dt seconds across the active job, reporting every
// definition completed within this call in completion order. Leftover time
// from a finished job carries into the next pending job, so a large dt can
// complete several jobs at once. A non-positive dt is a no-op.
func (q *ProductionQueue) Update(dt float64) []*ShipDefinition {
	if dt <= 0 {
		return nil
	}
	var done []*ShipDefinition
	for q.active != nil && dt > 0 {
		if dt < q.active.Remaining {
			q.active.Remaining -= dt
			break
		}
		dt -= q.active.Remaining
		done = append(done, q.active.Def)
		if q.events != nil {
			q.events.Add("production", "complete", q.active.Def.Name, 0)
		}
		q.active = nil
		if len(q.pending) > 0 {
			q.active = q.pending[0]
			q.pending = q.pending[1:]
		}
	}
	return done
}

// CancelAll discards every pending and active job unconditionally. Called
// when the owning base or facility is destroyed.
func (q *ProductionQueue) CancelAll() {
	q.active = nil
	q.pending = nil
}

// ActiveJob returns a copy of the active job, or nil when idle.
func (q *ProductionQueue) ActiveJob() *ProductionJob {
	if q.active == nil {
		return nil
	}
	j := *q.active
	return &j
}

// QueuedJobs returns copies of the pending jobs in FIFO order, excluding
// the active job.
func (q *ProductionQueue) QueuedJobs() []*ProductionJob {
	out := make([]*ProductionJob, 0, len(q.pending))
	for _, j := range q.pending {
		c := *j
		out = append(out, &c)
	}
	return out
}
