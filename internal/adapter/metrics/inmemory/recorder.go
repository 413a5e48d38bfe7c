package inmemory

import (
	"sync"

	"terminalpet/internal/domain/pet"
)

type Snapshot struct {
	EventTotal    uint64            `json:"event_total"`
	EventApplied  uint64            `json:"event_applied"`
	EventRejected uint64            `json:"event_rejected"`
	SaveFailure   uint64            `json:"save_failure"`
	ByEvent       map[string]uint64 `json:"by_event"`
}

type Recorder struct {
	mu          sync.Mutex
	applied     uint64
	rejected    uint64
	saveFailure uint64
	byEvent     map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byEvent: map[string]uint64{},
	}
}

func (r *Recorder) RecordApplied(event pet.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied++
	r.byEvent[event.String()]++
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordSaveFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveFailure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		EventApplied:  r.applied,
		EventRejected: r.rejected,
		SaveFailure:   r.saveFailure,
		EventTotal:    r.applied + r.rejected,
		ByEvent:       make(map[string]uint64, len(r.byEvent)),
	}
	for k, v := range r.byEvent {
		out.ByEvent[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
