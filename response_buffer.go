package bapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrBufferFull is returned when a write would grow the response buffer past its limit.
var ErrBufferFull = errors.New("bapi: response buffer is full")

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// ResponseBuffer is the [ResponseWriter] implementation. Status, headers and body are held back until the
// buffer is flushed, either explicitly through an [http.ResponseController] or implicitly at the end of
// the request.
type ResponseBuffer struct {
	resp   http.ResponseWriter
	limit  int
	buf    *bytes.Buffer
	header http.Header
	status int

	wroteHeader   bool
	headerFlushed bool
	flushed       bool
}

// NewResponseWriter wraps 'resp' in a buffered writer. A negative limit disables the size check.
func NewResponseWriter(resp http.ResponseWriter, limit int) ResponseWriter {
	return newBufferResponse(resp, limit)
}

func newBufferResponse(resp http.ResponseWriter, limit int) *ResponseBuffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{
		resp:   resp,
		limit:  limit,
		buf:    buf,
		header: make(http.Header),
	}
}

// Header returns the buffered header map.
func (w *ResponseBuffer) Header() http.Header { return w.header }

// Write appends to the buffer. It fails with [ErrBufferFull] without writing anything when 'p' does not fit.
func (w *ResponseBuffer) Write(p []byte) (int, error) {
	if w.limit >= 0 && w.buf.Len()+len(p) > w.limit {
		return 0, ErrBufferFull
	}

	w.wroteHeader = true

	return w.buf.Write(p)
}

// WriteHeader records the status code. Like the standard library only the first call has effect.
func (w *ResponseBuffer) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}

	w.status = statusCode
	w.wroteHeader = true
}

// Status returns the status code that will be (or was) sent, 200 when none was set explicitly.
func (w *ResponseBuffer) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

// Reset discards the buffered status, headers and body. It panics once the response was explicitly
// flushed since those bytes are already on the wire.
func (w *ResponseBuffer) Reset() {
	if w.flushed {
		panic("bapi: cannot reset response, already flushed")
	}

	w.buf.Reset()
	w.header = make(http.Header)
	w.status = 0
	w.wroteHeader = false
}

// FlushError writes everything buffered so far to the underlying writer and flushes it. It is called by
// [http.ResponseController.Flush].
func (w *ResponseBuffer) FlushError() error {
	w.flushed = true
	if err := w.writeOut(); err != nil {
		return err
	}

	if err := http.NewResponseController(w.resp).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("flush underlying writer: %w", err)
	}

	return nil
}

// Flush implements http.Flusher.
func (w *ResponseBuffer) Flush() { _ = w.FlushError() }

// FlushBuffer writes the buffered response to the underlying writer without forcing it onto the wire.
func (w *ResponseBuffer) FlushBuffer() error {
	return w.writeOut()
}

// Unwrap returns the underlying writer, for [http.ResponseController].
func (w *ResponseBuffer) Unwrap() http.ResponseWriter { return w.resp }

// Free returns the buffer to the pool. The writer must not be used afterwards.
func (w *ResponseBuffer) Free() {
	if w.buf == nil {
		return
	}

	bufPool.Put(w.buf)
	w.buf = nil
}

func (w *ResponseBuffer) writeOut() error {
	if !w.headerFlushed {
		dst := w.resp.Header()
		for k, v := range w.header {
			dst[k] = v
		}

		w.resp.WriteHeader(w.Status())
		w.headerFlushed = true
	}

	if w.buf.Len() < 1 {
		return nil
	}

	if _, err := w.buf.WriteTo(w.resp); err != nil {
		return fmt.Errorf("write buffered body: %w", err)
	}

	return nil
}
