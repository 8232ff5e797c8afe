package collection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

const (
	defaultQueueSize    = 16
	defaultWriteTimeout = 5 * time.Second
)

// WriterConfig holds the dependencies for an AsyncWriter
type WriterConfig struct {
	Repository   Repository
	PlayerID     string
	QueueSize    int
	WriteTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *WriterConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.PlayerID == "" {
		vb.RequiredField("PlayerID")
	}
	if c.QueueSize < 0 {
		vb.Field("QueueSize", "must not be negative")
	}
	return vb.Build()
}

// AsyncWriter saves documents in the background on a single goroutine, so
// writes land in the order they were handed over. Persist never blocks: when
// the queue is full the oldest pending snapshot is dropped.
type AsyncWriter struct {
	repo         Repository
	playerID     string
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
	queue  chan *Document
	done   chan struct{}
}

// NewAsyncWriter starts a writer. Call Close to drain and stop it.
func NewAsyncWriter(cfg *WriterConfig) (*AsyncWriter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	size := cfg.QueueSize
	if size == 0 {
		size = defaultQueueSize
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	w := &AsyncWriter{
		repo:         cfg.Repository,
		playerID:     cfg.PlayerID,
		writeTimeout: timeout,
		queue:        make(chan *Document, size),
		done:         make(chan struct{}),
	}
	go w.run()

	return w, nil
}

// Persist queues a snapshot for writing. It is a no-op after Close.
func (w *AsyncWriter) Persist(doc *Document) {
	if doc == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		slog.Warn("Collection write dropped after writer closed", "player_id", w.playerID)
		return
	}

	for {
		select {
		case w.queue <- doc:
			return
		default:
		}

		select {
		case <-w.queue:
			slog.Debug("Collection write coalesced", "player_id", w.playerID)
		default:
		}
	}
}

// Close stops accepting documents and waits for queued writes to finish or
// for ctx to expire
func (w *AsyncWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.CodeDeadlineExceeded, "collection writes did not drain")
	}
}

func (w *AsyncWriter) run() {
	defer close(w.done)

	for doc := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
		_, err := w.repo.Save(ctx, SaveInput{PlayerID: w.playerID, Document: doc})
		cancel()

		if err != nil {
			slog.Error("Failed to persist collection",
				"player_id", w.playerID,
				"error", err,
			)
			continue
		}

		slog.Debug("Collection persisted",
			"player_id", w.playerID,
			"cards", len(doc.Collection),
			"party_size", len(doc.Party),
		)
	}
}
