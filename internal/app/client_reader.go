package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/bft-labs/sumline/internal/domain"
	"github.com/bft-labs/sumline/internal/ports"
)

// readBufferSize bounds a single receive from the client.
const readBufferSize = 1024

// DefaultIdlePoll is how long the client reader sleeps while no client is connected.
const DefaultIdlePoll = 200 * time.Millisecond

// ClientMode selects how valid client input is processed.
type ClientMode string

const (
	// ClientModeDirect digests client input inline and replies at once,
	// bypassing the handoff and the worker.
	ClientModeDirect ClientMode = "direct"

	// ClientModeHandoff pushes client input through the handoff; the worker
	// replies to whichever client is current when it gets there.
	ClientModeHandoff ClientMode = "handoff"
)

// ParseClientMode validates a configured mode name.
func ParseClientMode(s string) (ClientMode, error) {
	switch m := ClientMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ClientModeDirect, ClientModeHandoff:
		return m, nil
	case "":
		return ClientModeDirect, nil
	default:
		return "", fmt.Errorf("unknown client mode %q (want %q or %q)", s, ClientModeDirect, ClientModeHandoff)
	}
}

// ClientReader receives input from the current client.
type ClientReader struct {
	slot     ports.ClientSlot
	handoff  *Handoff
	mode     ClientMode
	idlePoll time.Duration
	logger   ports.Logger
}

// NewClientReader creates a reader. handoff is only used in ClientModeHandoff.
func NewClientReader(slot ports.ClientSlot, handoff *Handoff, mode ClientMode, idlePoll time.Duration, logger ports.Logger) *ClientReader {
	if idlePoll <= 0 {
		idlePoll = DefaultIdlePoll
	}
	if mode == "" {
		mode = ClientModeDirect
	}
	return &ClientReader{
		slot:     slot,
		handoff:  handoff,
		mode:     mode,
		idlePoll: idlePoll,
		logger:   logger,
	}
}

// Run reads from whichever client is current until ctx is done.
func (r *ClientReader) Run(ctx context.Context) {
	buf := make([]byte, readBufferSize)

	for ctx.Err() == nil {
		c := r.slot.Current()
		if c == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.idlePoll):
			}
			continue
		}

		n, err := c.Read(buf)
		if n > 0 {
			r.handleChunk(c, buf[:n])
		}
		switch {
		case err != nil:
			r.disconnect(ctx, c, err)
		case n == 0:
			r.disconnect(ctx, c, io.EOF)
		}
	}
}

func (r *ClientReader) disconnect(ctx context.Context, c ports.Client, err error) {
	cleared := r.slot.ClearIf(c)
	switch {
	case errors.Is(err, io.EOF):
		r.logger.Info("client disconnected", ports.Uint64("client", c.ID()), ports.Bool("cleared", cleared))
	case errors.Is(err, net.ErrClosed) || ctx.Err() != nil:
		// closed locally: replaced, failed send, or shutdown
		r.logger.Debug("client closed", ports.Uint64("client", c.ID()))
	default:
		r.logger.Warn("receive failed, dropping client",
			ports.Uint64("client", c.ID()),
			ports.Bool("cleared", cleared),
			ports.Err(err),
		)
	}
}

func (r *ClientReader) handleChunk(c ports.Client, chunk []byte) {
	for _, input := range splitInputs(string(chunk)) {
		r.handleInput(c, input)
	}
}

func (r *ClientReader) handleInput(c ports.Client, input string) {
	r.logger.Info("client input", ports.Uint64("client", c.ID()), ports.String("input", input))

	if !domain.Validate(input) {
		reply(r.slot, c, domain.ErrorReply, r.logger)
		return
	}

	transformed := domain.Transform(input)

	if r.mode == ClientModeHandoff {
		if r.handoff.Put(transformed) {
			r.logger.Warn("pending item overwritten", ports.String("source", "client"))
		}
		return
	}

	sum := domain.Digest(transformed)
	r.logger.Info("client digest",
		ports.Uint64("client", c.ID()),
		ports.String("data", transformed),
		ports.Int("sum", sum),
	)
	reply(r.slot, c, domain.SumReply(sum), r.logger)
}

// splitInputs breaks a received chunk into newline-separated inputs.
// Carriage returns are dropped and blank lines skipped; a chunk holding
// nothing but line terminators yields a single empty input.
func splitInputs(chunk string) []string {
	var inputs []string
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if len(inputs) == 0 {
		return []string{""}
	}
	return inputs
}
