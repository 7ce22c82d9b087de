package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	autolink "github.com/autolink/autolink.go"
	"github.com/autolink/autolink.go/contrib/wslink"
	"github.com/autolink/autolink.go/pkg/logger"
	logslog "github.com/autolink/autolink.go/pkg/logger/slog"
)

func main() {
	url := flag.String("url", "ws://localhost:8000/rpc", "WebSocket endpoint to supervise")
	tick := flag.Duration("tick", time.Second, "supervision tick interval")
	flag.Parse()

	logData, err := logger.New().Make()
	if err != nil {
		panic(err)
	}

	link := wslink.New(*url, logslog.New(slog.NewTextHandler(os.Stderr, nil)))
	defer link.Close()

	s := autolink.New("backend")
	s.SetMaxAttempts(10)
	s.SetReconnectDelay(5 * time.Second)
	s.SetConnectFunc(link.Connector())
	s.SetStatusFunc(link.Status())
	s.SetLogFunc(logData.Log)
	s.SetErrorFunc(logData.Err)

	// Kick off the initial attempt outside the tick path and tell the
	// supervisor about it.
	if link.StartConnect() {
		s.OnConnectionAttemptStarted()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
			if !s.Enabled() && !s.Connected() {
				// Out of attempts; a real application might wait for
				// operator input before calling Enable again.
				logData.Log("backend giving up, exiting")
				return
			}
		case <-interrupt:
			return
		}
	}
}
