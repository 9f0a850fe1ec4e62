package app

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleReader_ValidInputReachesHandoff(t *testing.T) {
	h := NewHandoff()
	out := &syncBuffer{}
	r := NewConsoleReader(strings.NewReader("1234\n"), out, false, "", h, mockLogger{})

	r.Run()

	item, ok := h.Take()
	require.True(t, ok)
	assert.Equal(t, "KV3KV1", item)
	assert.True(t, h.Terminated(), "end of input ends the session")
}

func TestConsoleReader_InvalidInputReported(t *testing.T) {
	h := NewHandoff()
	out := &syncBuffer{}
	r := NewConsoleReader(strings.NewReader("abc exit"), out, false, "", h, mockLogger{})

	r.Run()

	assert.Contains(t, out.String(), "error: only digits, max 64 chars")
	_, ok := h.Take()
	assert.False(t, ok, "invalid input produces no work")
}

func TestConsoleReader_ExitStopsReading(t *testing.T) {
	h := NewHandoff()
	r := NewConsoleReader(strings.NewReader("13579 exit 1234"), nil, false, "", h, mockLogger{})

	r.Run()

	item, ok := h.Take()
	require.True(t, ok)
	assert.Equal(t, "97531", item, "tokens after exit are never read")
	_, ok = h.Take()
	assert.False(t, ok)
}

func TestConsoleReader_CustomExitKeyword(t *testing.T) {
	h := NewHandoff()
	out := &syncBuffer{}
	r := NewConsoleReader(strings.NewReader("exit quit 5"), out, false, "quit", h, mockLogger{})

	r.Run()

	assert.Contains(t, out.String(), "error: only digits", "default keyword is plain invalid input here")
	_, ok := h.Take()
	assert.False(t, ok)
}

func TestConsoleReader_UnconsumedInputOverwritten(t *testing.T) {
	h := NewHandoff()
	r := NewConsoleReader(strings.NewReader("1 3 exit"), nil, false, "", h, mockLogger{})

	r.Run()

	item, ok := h.Take()
	require.True(t, ok)
	assert.Equal(t, "3", item)
	assert.Equal(t, uint64(1), h.Overwrites())
}

func TestConsoleReader_Prompt(t *testing.T) {
	h := NewHandoff()
	out := &syncBuffer{}
	r := NewConsoleReader(strings.NewReader("exit"), out, true, "", h, mockLogger{})

	r.Run()

	assert.Equal(t, "enter digits (or 'exit' to quit): ", out.String())
}

func TestConsoleReader_OversizedTokenRejected(t *testing.T) {
	h := NewHandoff()
	out := &syncBuffer{}
	in := strings.Repeat("1", maxConsoleToken+10) + " 5 exit"
	r := NewConsoleReader(strings.NewReader(in), out, false, "", h, mockLogger{})

	r.Run()

	assert.Contains(t, out.String(), "error: only digits, max 64 chars")
	item, ok := h.Take()
	require.True(t, ok, "session continues after an oversized token")
	assert.Equal(t, "5", item)
}

func TestNextToken(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("  12\t\n34  \r\n56"))

	for _, want := range []string{"12", "34", "56"} {
		tok, err := nextToken(br)
		require.NoError(t, err)
		assert.Equal(t, want, tok)
	}
	_, err := nextToken(br)
	assert.ErrorIs(t, err, io.EOF)
}
