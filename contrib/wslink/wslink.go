// Package wslink adapts a WebSocket connection to the callback
// contract expected by a [autolink.Supervisor].
//
// A [Link] owns a single gorilla/websocket connection. StartConnect
// begins a dial in the background and returns immediately, which makes
// it suitable as a supervisor connector: the return value means an
// attempt was initiated, not that the connection succeeded. IsConnected
// is a flag read, cheap enough to serve as the status probe on every
// tick.
//
// Basic usage:
//
//	link := wslink.New("ws://localhost:8000/rpc", log)
//	defer link.Close()
//
//	s := autolink.New("backend")
//	s.SetConnectFunc(link.Connector())
//	s.SetStatusFunc(link.Status())
//
//	for range time.Tick(time.Second) {
//	    s.Tick()
//	}
package wslink

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	gorilla "github.com/gorilla/websocket"

	autolink "github.com/autolink/autolink.go"
	"github.com/autolink/autolink.go/pkg/logger"
)

// DefaultDialTimeout bounds the WebSocket handshake.
const DefaultDialTimeout = 10 * time.Second

// Link is a WebSocket connection holder whose connect and status
// methods match the supervisor callback contract.
//
// The exported fields configure dialing and must not be changed after
// the first StartConnect.
type Link struct {
	// URL is the WebSocket endpoint, e.g. "ws://localhost:8000/rpc".
	URL string

	// Header is sent with the handshake request. May be nil.
	Header http.Header

	// DialTimeout bounds the handshake. Defaults to DefaultDialTimeout.
	DialTimeout time.Duration

	logger logger.Logger

	connected atomic.Bool
	dialing   atomic.Bool

	connLock sync.Mutex
	conn     *gorilla.Conn
}

// New returns a Link for the given endpoint. A nil log discards the
// Link's own diagnostics.
func New(url string, log logger.Logger) *Link {
	if log == nil {
		log = nopLogger{}
	}
	return &Link{
		URL:         url,
		DialTimeout: DefaultDialTimeout,
		logger:      log,
	}
}

// StartConnect begins a connection attempt in the background and
// reports whether an attempt was initiated. It returns false when the
// link is already connected or an attempt is still in flight, so a
// supervisor driving it never stacks dials.
func (l *Link) StartConnect() bool {
	if l.connected.Load() {
		return false
	}
	if !l.dialing.CompareAndSwap(false, true) {
		// An attempt is still in flight.
		return false
	}

	go l.dial()

	return true
}

func (l *Link) dial() {
	defer l.dialing.Store(false)

	dialer := gorilla.Dialer{
		HandshakeTimeout: l.DialTimeout,
	}

	conn, resp, err := dialer.Dial(l.URL, l.Header)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		l.logger.Error("wslink dial failed", "url", l.URL, "error", err)
		return
	}

	l.connLock.Lock()
	l.conn = conn
	l.connLock.Unlock()

	l.connected.Store(true)
	l.logger.Debug("wslink connected", "url", l.URL)

	go l.readLoop(conn)
}

// readLoop drains the connection until it errors, which is how peer
// closure and network drops are detected.
func (l *Link) readLoop(conn *gorilla.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	l.connected.Store(false)
	conn.Close()
	l.logger.Debug("wslink connection closed", "url", l.URL)
}

// IsConnected reports whether the link is currently up.
func (l *Link) IsConnected() bool {
	return l.connected.Load()
}

// Close tears down the current connection, if any. The Link can be
// reconnected afterwards with StartConnect.
func (l *Link) Close() error {
	l.connLock.Lock()
	defer l.connLock.Unlock()

	if l.conn == nil {
		return nil
	}

	err := l.conn.Close()
	l.conn = nil
	l.connected.Store(false)

	return err
}

// Connector returns the connect callback to register with
// [autolink.Supervisor.SetConnectFunc].
func (l *Link) Connector() autolink.ConnectFunc {
	return l.StartConnect
}

// Status returns the status-probe callback to register with
// [autolink.Supervisor.SetStatusFunc].
func (l *Link) Status() autolink.StatusFunc {
	return l.IsConnected
}

type nopLogger struct{}

func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
