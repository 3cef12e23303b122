package services

import (
	"log"
	"sync"
	"sync/atomic"
)

// TargetWorker decouples target computation from the web request: submitting
// returns a job id immediately, and completion is observed either by polling
// the intake's target fields or by subscribing for updates.

type TargetJob struct {
	ID       uint64
	Username string
}

type TargetUpdate struct {
	JobID    uint64         `json:"job_id"`
	Username string         `json:"username"`
	Result   *TargetsResult `json:"result,omitempty"`
	Err      string         `json:"error,omitempty"`
}

type TargetWorker struct {
	jobs        chan TargetJob
	svc         *TargetService
	hub         *RealtimeHub
	subscribers map[chan TargetUpdate]bool
	subMux      sync.RWMutex
	nextID      atomic.Uint64
}

func NewTargetWorker(svc *TargetService, hub *RealtimeHub, buffer int) *TargetWorker {
	if buffer <= 0 {
		buffer = 100
	}
	return &TargetWorker{
		jobs:        make(chan TargetJob, buffer),
		svc:         svc,
		hub:         hub,
		subscribers: make(map[chan TargetUpdate]bool),
	}
}

func (w *TargetWorker) Start() {
	go w.run()
	log.Println("target worker started")
}

// Enqueue submits a job and returns its handle. The queue is bounded; a full
// queue drops the job rather than blocking the request.
func (w *TargetWorker) Enqueue(username string) (uint64, bool) {
	job := TargetJob{ID: w.nextID.Add(1), Username: username}
	select {
	case w.jobs <- job:
		return job.ID, true
	default:
		log.Printf("target job queue full, dropping job for %s", username)
		return 0, false
	}
}

func (w *TargetWorker) Subscribe(ch chan TargetUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	w.subscribers[ch] = true
}

func (w *TargetWorker) Unsubscribe(ch chan TargetUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	delete(w.subscribers, ch)
	close(ch)
}

func (w *TargetWorker) run() {
	for job := range w.jobs {
		w.process(job)
	}
}

func (w *TargetWorker) process(job TargetJob) {
	update := TargetUpdate{JobID: job.ID, Username: job.Username}

	result, err := w.svc.ComputeDailyTargets(job.Username)
	if err != nil {
		log.Printf("target job %d for %s failed: %v", job.ID, job.Username, err)
		update.Err = err.Error()
	} else {
		update.Result = result
	}

	if w.hub != nil {
		w.hub.Broadcast(job.Username, map[string]any{
			"kind":   "targets.computed",
			"update": update,
		})
	}

	w.subMux.RLock()
	for ch := range w.subscribers {
		select {
		case ch <- update:
		default:
		}
	}
	w.subMux.RUnlock()
}
