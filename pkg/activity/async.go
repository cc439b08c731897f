package activity

import (
	"context"
	"sync"
	"time"
)

// BatchStorage persists events in bulk. Batch writes should be a single
// round trip to the store.
type BatchStorage interface {
	StoreBatch(ctx context.Context, events []Event) error
}

// AsyncOptions tunes the buffering behavior of an AsyncWriter.
type AsyncOptions struct {
	BufferSize     int           // events queued in memory before Store drops
	BatchSize      int           // target events per storage write
	FlushInterval  time.Duration // max time a partial batch waits in memory
	StorageTimeout time.Duration // per-batch write deadline
}

// AsyncWriter decouples event recording from storage latency. Events are
// buffered in memory and flushed in batches by a background goroutine.
//
// Activity events are best-effort telemetry: when the buffer is full the
// event is dropped rather than blocking the caller's request, which is the
// opposite tradeoff from an audit trail.
type AsyncWriter struct {
	storage BatchStorage
	events  chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	opts    AsyncOptions

	mu      sync.Mutex
	dropped int64
}

// NewAsyncWriter starts the background flusher and returns the writer plus
// a shutdown func that drains remaining events.
func NewAsyncWriter(storage BatchStorage, opts AsyncOptions) (*AsyncWriter, func(context.Context) error) {
	if storage == nil {
		panic("activity: batch storage cannot be nil")
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = 256
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 32
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 250 * time.Millisecond
	}
	if opts.StorageTimeout <= 0 {
		opts.StorageTimeout = 5 * time.Second
	}

	w := &AsyncWriter{
		storage: storage,
		events:  make(chan Event, opts.BufferSize),
		done:    make(chan struct{}),
		opts:    opts,
	}

	w.wg.Add(1)
	go w.flusher()

	return w, w.Close
}

// Store queues the event for background persistence. It never blocks: a
// full buffer or a closed writer drops the event and returns an error the
// caller may log.
func (w *AsyncWriter) Store(ctx context.Context, event Event) error {
	select {
	case <-w.done:
		return ErrWriterClosed
	default:
	}

	select {
	case w.events <- event:
		return nil
	default:
		w.mu.Lock()
		w.dropped++
		w.mu.Unlock()
		return ErrFailedToStoreEvent
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (w *AsyncWriter) Dropped() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

func (w *AsyncWriter) flusher() {
	defer w.wg.Done()

	pending := make([]Event, 0, w.opts.BatchSize)
	ticker := time.NewTicker(w.opts.FlushInterval)
	defer ticker.Stop()

	// Storage writes run on a detached context so a slow flush cannot be
	// cancelled by whichever request happened to trigger it.
	flush := func() {
		if len(pending) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), w.opts.StorageTimeout)
		_ = w.storage.StoreBatch(ctx, pending)
		cancel()
		pending = pending[:0]
	}

	for {
		select {
		case event := <-w.events:
			pending = append(pending, event)
			if len(pending) >= w.opts.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-w.done:
			// Drain whatever is still buffered before exiting.
			for {
				select {
				case event := <-w.events:
					pending = append(pending, event)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close stops the flusher and drains buffered events. The context bounds
// the shutdown; on timeout, undrained events are lost.
func (w *AsyncWriter) Close(ctx context.Context) error {
	close(w.done)

	finished := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
