package git

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var percentPattern = regexp.MustCompile(`(\d{1,3})%`)

// ProgressFunc receives a percentage in the range 0..100 and the stage label reported by the remote.
type ProgressFunc func(percent int, message string)

// ProgressWriter turns sideband progress output ("Receiving objects:  45% (9/20)\r") into
// ProgressFunc calls. Lines without a percentage are ignored.
type ProgressWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	fn      ProgressFunc
	last    int
	lastMsg string
}

func NewProgressWriter(fn ProgressFunc) *ProgressWriter {
	return &ProgressWriter{
		fn:   fn,
		last: -1,
	}
}

// Write implements io.Writer.
func (w *ProgressWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		idx := bytes.IndexAny(data, "\r\n")
		if idx < 0 {
			break
		}

		line := string(data[:idx])
		w.buf.Next(idx + 1)
		w.emit(line)
	}

	return len(p), nil
}

func (w *ProgressWriter) emit(line string) {
	line = strings.TrimSpace(line)
	match := percentPattern.FindStringSubmatchIndex(line)
	if match == nil {
		return
	}

	percent, err := strconv.Atoi(line[match[2]:match[3]])
	if err != nil || percent > 100 {
		return
	}

	message := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[:match[0]]), ":"))
	if percent == w.last && message == w.lastMsg {
		return
	}

	w.last = percent
	w.lastMsg = message
	if w.fn != nil {
		w.fn(percent, message)
	}
}
