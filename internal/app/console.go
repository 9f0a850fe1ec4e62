package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/bft-labs/sumline/internal/domain"
	"github.com/bft-labs/sumline/internal/ports"
)

// DefaultExitKeyword ends the session when typed on the console.
const DefaultExitKeyword = "exit"

const (
	consolePrompt  = "enter digits (or '%s' to quit): "
	consoleInvalid = "error: only digits, max 64 chars"

	// Bytes kept per token. Anything longer is truncated, which still fails
	// validation, and the remainder up to the next whitespace is discarded.
	maxConsoleToken = 1 << 20
)

// ConsoleReader reads whitespace-separated tokens from the console and feeds
// valid ones into the handoff. It is the only component that signals
// termination.
type ConsoleReader struct {
	in          io.Reader
	out         io.Writer
	prompt      bool
	exitKeyword string
	handoff     *Handoff
	logger      ports.Logger
}

// NewConsoleReader creates a console reader. The prompt is printed to out
// before each token only when prompt is true.
func NewConsoleReader(in io.Reader, out io.Writer, prompt bool, exitKeyword string, handoff *Handoff, logger ports.Logger) *ConsoleReader {
	if exitKeyword == "" {
		exitKeyword = DefaultExitKeyword
	}
	if out == nil {
		out = io.Discard
	}
	return &ConsoleReader{
		in:          in,
		out:         out,
		prompt:      prompt,
		exitKeyword: exitKeyword,
		handoff:     handoff,
		logger:      logger,
	}
}

// Run reads until the exit keyword or end of input, then signals termination.
func (r *ConsoleReader) Run() {
	br := bufio.NewReader(r.in)

	defer r.handoff.SignalTermination()

	for {
		if r.prompt {
			fmt.Fprintf(r.out, consolePrompt, r.exitKeyword)
		}
		token, err := nextToken(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.logger.Info("console input closed, shutting down")
			} else {
				r.logger.Error("console read failed, shutting down", ports.Err(err))
			}
			return
		}

		if token == r.exitKeyword {
			r.logger.Info("exit requested")
			return
		}
		r.handleToken(token)
	}
}

func (r *ConsoleReader) handleToken(token string) {
	input, err := domain.ParseInput(token)
	if err != nil {
		fmt.Fprintln(r.out, consoleInvalid)
		r.logger.Debug("console input rejected", ports.Err(err))
		return
	}

	if r.handoff.Put(domain.Transform(input)) {
		r.logger.Warn("pending item overwritten", ports.String("source", "console"))
	}
}

// nextToken returns the next whitespace-separated token from br. A token is
// returned even when input ends without trailing whitespace; io.EOF is
// reported only once no token remains.
func nextToken(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		ch, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if unicode.IsSpace(ch) {
			if len(buf) > 0 {
				return string(buf), nil
			}
			continue
		}
		if len(buf) <= maxConsoleToken {
			buf = utf8.AppendRune(buf, ch)
		}
	}
}
