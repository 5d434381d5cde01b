package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	errEmptyAddr     = errors.New("logstash: empty address")
	errRetryCooldown = errors.New("logstash: retry cooldown in effect")
)

// LogstashWriter mirrors JSON log lines to a Logstash TCP input. Writes never
// fail because of the network: while Logstash is unreachable lines are
// counted as dropped and a reconnect is attempted after the cool-down.
type LogstashWriter struct {
	addr     string
	dial     func(network, addr string, timeout time.Duration) (net.Conn, error)
	dialWait time.Duration
	sendWait time.Duration
	cooldown time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool

	dropped atomic.Int64
}

type Option func(*LogstashWriter)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.dialWait = d }
}

// WithWriteTimeout overrides the per-line write deadline. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.sendWait = d }
}

// WithRetryInterval overrides the pause after a failed dial or write.
// Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(w *LogstashWriter) { w.cooldown = d }
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errEmptyAddr
	}
	w := &LogstashWriter{
		addr:     addr,
		dial:     net.DialTimeout,
		dialWait: 2 * time.Second,
		sendWait: time.Second,
		cooldown: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Write sends p as one newline-terminated line.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if err := w.connectLocked(); err != nil {
		w.dropped.Add(1)
		return len(p), nil
	}
	if w.sendWait > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.sendWait))
	}
	if _, err := w.conn.Write(line); err != nil {
		w.dropped.Add(1)
		w.disconnectLocked()
		w.backoffLocked()
	}
	return len(p), nil
}

// Sync lets the writer back a zapcore.WriteSyncer. Lines are unbuffered.
func (w *LogstashWriter) Sync() error { return nil }

// Dropped reports how many lines never reached Logstash.
func (w *LogstashWriter) Dropped() int64 { return w.dropped.Load() }

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.disconnectLocked()
}

func (w *LogstashWriter) connectLocked() error {
	if w.conn != nil {
		return nil
	}
	if !w.nextRetry.IsZero() && time.Now().Before(w.nextRetry) {
		return errRetryCooldown
	}
	conn, err := w.dial("tcp", w.addr, w.dialWait)
	if err != nil {
		w.backoffLocked()
		return err
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return nil
}

func (w *LogstashWriter) disconnectLocked() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *LogstashWriter) backoffLocked() {
	if w.cooldown <= 0 {
		w.nextRetry = time.Time{}
		return
	}
	w.nextRetry = time.Now().Add(w.cooldown)
}
