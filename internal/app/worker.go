package app

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/bft-labs/sumline/internal/domain"
	"github.com/bft-labs/sumline/internal/ports"
)

// Worker is the single consumer of the Handoff. For each transformed string
// it computes the digest, logs it, echoes it to the console and replies to
// the current client, if there is one.
type Worker struct {
	handoff *Handoff
	slot    ports.ClientSlot
	out     io.Writer
	logger  ports.Logger

	processed atomic.Uint64
}

// NewWorker creates a worker. out may be nil to skip the console echo.
func NewWorker(handoff *Handoff, slot ports.ClientSlot, out io.Writer, logger ports.Logger) *Worker {
	return &Worker{
		handoff: handoff,
		slot:    slot,
		out:     out,
		logger:  logger,
	}
}

// Run drains the handoff until it returns the end sentinel.
// A failed reply never stops the loop.
func (w *Worker) Run() {
	for {
		item, ok := w.handoff.Take()
		if !ok {
			w.logger.Info("worker stopped", ports.Uint64("processed", w.processed.Load()))
			return
		}
		w.handle(item)
	}
}

// Processed returns how many items the worker has consumed.
func (w *Worker) Processed() uint64 {
	return w.processed.Load()
}

func (w *Worker) handle(item string) {
	w.processed.Add(1)
	w.logger.Info("received from buffer", ports.String("data", item))

	sum := domain.Digest(item)
	w.logger.Info("digit sum", ports.String("data", item), ports.Int("sum", sum))
	if w.out != nil {
		fmt.Fprintf(w.out, "sum: %d\n", sum)
	}

	c := w.slot.Current()
	if c == nil {
		w.logger.Debug("sum not sent", ports.Err(domain.ErrNoClient))
		return
	}
	if reply(w.slot, c, domain.SumReply(sum), w.logger) {
		w.logger.Debug("sum sent to client", ports.Uint64("client", c.ID()), ports.Int("sum", sum))
	}
}
