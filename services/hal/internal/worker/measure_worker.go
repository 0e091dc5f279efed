// Package worker runs device reads for one shared bus on a single goroutine,
// so two devices never interleave transactions from the service side.
package worker

import (
	"context"
	"time"

	"sensorcode-go/services/hal/internal/halcore"
	"sensorcode-go/services/hal/internal/util"
)

type MeasureWorker struct {
	cfg  halcore.WorkerConfig
	reqQ chan halcore.MeasureReq
	sink chan<- halcore.Result // fan-in sink owned by the service

	inflight map[string]*job // devID -> triggered, awaiting collect
	again    map[string]bool // prio request arrived while in flight
	timer    *time.Timer
}

type job struct {
	id      string
	ad      halcore.Adaptor
	due     time.Time
	retries int
}

func New(cfg halcore.WorkerConfig, sink chan<- halcore.Result) *MeasureWorker {
	if cfg.TriggerTimeout <= 0 {
		cfg.TriggerTimeout = 100 * time.Millisecond
	}
	if cfg.CollectTimeout <= 0 {
		cfg.CollectTimeout = 250 * time.Millisecond
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 15 * time.Millisecond
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 6
	}
	if cfg.InputQueueSize <= 0 {
		cfg.InputQueueSize = 16
	}
	return &MeasureWorker{
		cfg:      cfg,
		reqQ:     make(chan halcore.MeasureReq, cfg.InputQueueSize),
		sink:     sink,
		inflight: map[string]*job{},
		again:    map[string]bool{},
		timer:    time.NewTimer(time.Hour),
	}
}

// Submit queues a read. Non-priority requests are dropped when the queue is
// full; priority requests wait briefly for room.
func (w *MeasureWorker) Submit(req halcore.MeasureReq) bool {
	select {
	case w.reqQ <- req:
		return true
	default:
	}
	if !req.Prio {
		return false
	}
	select {
	case w.reqQ <- req:
		return true
	case <-time.After(5 * time.Millisecond):
		return false
	}
}

func (w *MeasureWorker) Start(ctx context.Context) {
	if !w.timer.Stop() {
		util.DrainTimer(w.timer)
	}
	go w.run(ctx)
}

func (w *MeasureWorker) run(ctx context.Context) {
	for {
		if next := w.nextDue(); next.IsZero() {
			util.ResetTimer(w.timer, time.Hour)
		} else {
			util.ResetTimer(w.timer, time.Until(next))
		}
		select {
		case <-ctx.Done():
			return
		case req := <-w.reqQ:
			if _, busy := w.inflight[req.ID]; busy {
				if req.Prio {
					w.again[req.ID] = true
				}
				continue
			}
			w.trigger(ctx, req.ID, req.Adaptor)
		case <-w.timer.C:
			w.collectDue(ctx, time.Now())
		}
	}
}

func (w *MeasureWorker) trigger(ctx context.Context, id string, ad halcore.Adaptor) {
	tctx, cancel := context.WithTimeout(ctx, w.cfg.TriggerTimeout)
	after, err := ad.Trigger(tctx)
	cancel()
	if err != nil {
		w.emit(halcore.Result{ID: id, Err: err})
		return
	}
	w.inflight[id] = &job{id: id, ad: ad, due: time.Now().Add(after)}
}

func (w *MeasureWorker) collectDue(ctx context.Context, now time.Time) {
	for id, j := range w.inflight {
		if now.Before(j.due) {
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, w.cfg.CollectTimeout)
		s, err := j.ad.Collect(cctx)
		cancel()
		if err == halcore.ErrNotReady && j.retries < w.cfg.MaxRetries {
			j.retries++
			j.due = now.Add(w.cfg.RetryBackoff)
			continue
		}
		delete(w.inflight, id)
		w.emit(halcore.Result{ID: id, Sample: s, Err: err})
		if w.again[id] {
			delete(w.again, id)
			w.trigger(ctx, id, j.ad)
		}
	}
}

// emit blocks: results must not be lost, and the service drains the sink.
func (w *MeasureWorker) emit(r halcore.Result) { w.sink <- r }

func (w *MeasureWorker) nextDue() time.Time {
	var min time.Time
	for _, j := range w.inflight {
		if min.IsZero() || j.due.Before(min) {
			min = j.due
		}
	}
	return min
}
