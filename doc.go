// The [autolink] package supervises reconnection for a single logical
// connection, such as WiFi, Bluetooth, or any transport that exposes a
// binary connected/disconnected status.
//
// # How it works
//
// The main component is [Supervisor]. It is driven by calling [Supervisor.Tick]
// regularly; each Tick probes the current status, detects connect and
// disconnect transitions, and initiates a reconnect attempt when the
// connection is down and the configured delay has elapsed. After
// reaching the configured attempt ceiling, the Supervisor disables
// itself; call [Supervisor.Enable] to resume.
//
// The Supervisor owns no socket and performs no I/O. Everything
// external is injected as a callback: a connector that starts a
// connection attempt, a status probe that reports connectivity, and
// optional log and error sinks. This keeps the Supervisor usable with
// any transport; the [github.com/autolink/autolink.go/contrib/wslink]
// package shows the contract wired to a WebSocket connection.
//
// Basic usage:
//
//	s := autolink.New("WiFi")
//	s.SetMaxAttempts(10)
//	s.SetReconnectDelay(5 * time.Second)
//	s.SetConnectFunc(startWifiConnect) // func() bool, true if an attempt was initiated
//	s.SetStatusFunc(wifiIsConnected)   // func() bool, cheap flag read
//	s.SetLogFunc(func(msg string) { log.Println(msg) })
//
//	for range time.Tick(time.Second) {
//	    s.Tick()
//	}
//
// # Concurrency
//
// A Supervisor assumes all of its methods are called from a single
// goroutine. It holds no internal locks; embedders calling from
// multiple goroutines must serialize access themselves.
//
// # Logging
//
// The log and error sinks take a plain message string. For structured
// logging backends, the [github.com/autolink/autolink.go/pkg/logger]
// package provides zerolog and log/slog adapters shaped to drop into
// the sink slots.
package autolink
