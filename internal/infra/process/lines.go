// Where: internal/infra/process/lines.go
// What: Line-oriented stream collection.
// Why: Both runners capture output as ordered line slices with optional tee writers.
package process

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// lineSink appends lines in order and echoes them to an optional tee. A tee
// failure disables the tee and is remembered; capture continues.
type lineSink struct {
	lines  []string
	tee    io.Writer
	teeErr error
}

func (s *lineSink) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	s.lines = append(s.lines, line)
	if s.tee == nil || s.teeErr != nil {
		return
	}
	if _, err := fmt.Fprintln(s.tee, line); err != nil {
		s.teeErr = fmt.Errorf("tee output: %w", err)
	}
}

// collectLines reads r until EOF with no limit on line length. A read
// deadline ends collection quietly; the caller sets one only after the
// process has exited. Any other read failure is returned.
func collectLines(r io.Reader, sink *lineSink) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			sink.emit(strings.TrimSuffix(line, "\n"))
			continue
		}
		if line != "" {
			sink.emit(line)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, os.ErrDeadlineExceeded) {
			return nil
		}
		return fmt.Errorf("read output: %w", err)
	}
}

// lineBuffer is an io.Writer that splits written bytes into lines. It is used
// where the producer pushes bytes (docker log demux) rather than exposing a
// reader.
type lineBuffer struct {
	mu      sync.Mutex
	pending bytes.Buffer
	sink    lineSink
}

func newLineBuffer(tee io.Writer) *lineBuffer {
	return &lineBuffer{sink: lineSink{tee: tee}}
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending.Write(p)
	for {
		idx := bytes.IndexByte(b.pending.Bytes(), '\n')
		if idx < 0 {
			break
		}
		b.sink.emit(string(b.pending.Next(idx + 1)[:idx]))
	}
	return len(p), nil
}

// Lines flushes a trailing unterminated line and returns everything seen.
func (b *lineBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending.Len() > 0 {
		b.sink.emit(b.pending.String())
		b.pending.Reset()
	}
	return b.sink.lines
}

// TeeErr reports the first tee write failure, if any.
func (b *lineBuffer) TeeErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sink.teeErr
}
